package errors

import (
	"fmt"
	"strings"

	"github.com/VaultRelay/parachain-lib/common/types"
	"github.com/pkg/errors"
)

var (
	// ErrBatchUnavailable indicates the runtime exposes none of the known
	// batch primitives. Fatal for batch composition only; single-call
	// encoding remains valid.
	ErrBatchUnavailable = errors.New("no batch call available in runtime")
	// ErrNoCallsToBatch indicates batch composition was requested with an
	// empty call list.
	ErrNoCallsToBatch = errors.New("no calls to batch")
)

// MissingConfigurationError indicates the endpoint for a chain is not
// configured. Fatal and surfaced immediately; never retried.
type MissingConfigurationError struct {
	Chain  types.ChainId
	EnvVar string
}

// Error returns the error message, naming the missing environment variable.
func (e *MissingConfigurationError) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("missing endpoint configuration for chain %s: no endpoint variable registered", e.Chain)
	}
	return fmt.Sprintf("missing endpoint configuration for chain %s: environment variable %s is not set", e.Chain, e.EnvVar)
}

// NetworkError indicates a connection attempt failed. Fatal for the current
// call; the registry stays retryable on the next request.
type NetworkError struct {
	Chain    types.ChainId
	Endpoint string
	Err      error
}

// Error returns the error message.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to connect to chain %s at %s: %v", e.Chain, e.Endpoint, e.Err)
}

// Unwrap returns the underlying dial error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UnsupportedError indicates the target pallet or call is absent from the
// current metadata snapshot. Not a code defect: runtimes evolve and calls get
// renamed, added, or removed between upgrades.
type UnsupportedError struct {
	Pallet string
	Method string
}

// Error returns the error message.
func (e *UnsupportedError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("pallet %s not found in runtime metadata", e.Pallet)
	}
	return fmt.Sprintf("call %s.%s not found in runtime metadata", e.Pallet, e.Method)
}

// CandidateFailure records why one candidate shape was rejected.
type CandidateFailure struct {
	Label  string
	Reason string
}

// CallConstructionError indicates every candidate shape was rejected by the
// runtime. Fatal and non-recoverable: the runtime's call shape has drifted
// beyond the known candidates. Carries the full per-candidate diagnostic
// trail, in candidate order.
type CallConstructionError struct {
	Pallet   string
	Method   string
	Failures []CandidateFailure
}

// Error returns the error message with one entry per rejected candidate.
func (e *CallConstructionError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "failed to construct call %s.%s: all %d candidates rejected", e.Pallet, e.Method, len(e.Failures))
	for _, failure := range e.Failures {
		fmt.Fprintf(&sb, "; [%s] %s", failure.Label, failure.Reason)
	}
	return sb.String()
}

// EncodeError indicates serialization failed after successful construction.
// Rare; points at a deeper metadata inconsistency.
type EncodeError struct {
	Err error
}

// Error returns the error message.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode call: %v", e.Err)
}

// Unwrap returns the underlying codec error.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsMissingConfiguration reports whether err is a MissingConfigurationError.
func IsMissingConfiguration(err error) bool {
	var target *MissingConfigurationError
	return errors.As(err, &target)
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsUnsupported reports whether err is an UnsupportedError.
func IsUnsupported(err error) bool {
	var target *UnsupportedError
	return errors.As(err, &target)
}

// IsCallConstruction reports whether err is a CallConstructionError.
func IsCallConstruction(err error) bool {
	var target *CallConstructionError
	return errors.As(err, &target)
}

// IsEncode reports whether err is an EncodeError.
func IsEncode(err error) bool {
	var target *EncodeError
	return errors.As(err, &target)
}
