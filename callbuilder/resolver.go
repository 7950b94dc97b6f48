package callbuilder

import (
	"bytes"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	gsrpctypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commonerrors "github.com/VaultRelay/parachain-lib/common/errors"
	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

// Resolve attempts the candidate shapes in order against the runtime's
// declared call shape and returns the first accepted construction.
//
// Candidates are tried strictly in slice order and the loop short-circuits on
// the first acceptance, so resolution is deterministic for a fixed metadata
// snapshot and candidate list. Per-candidate rejections are recovered locally:
// logged, recorded, and only surfaced if every candidate fails.
//
// Parameters:
// - logger: the logger for per-candidate diagnostics.
// - prober: the capability prober for the connection's current snapshot.
// - intent: the target pallet and call.
// - candidates: the ordered candidate shapes to try.
//
// Returns:
// - *commontypes.ResolvedCall: the accepted call with its winning candidate label.
// - error: an UnsupportedError if the pallet or call is absent, or a
//   CallConstructionError carrying one failure per candidate if all are rejected.
func Resolve(
	logger *logrus.Logger,
	prober commontypes.CapabilityProber,
	intent commontypes.CallIntent,
	candidates []commontypes.CallCandidate,
) (*commontypes.ResolvedCall, error) {
	if !prober.HasPallet(intent.Pallet) {
		return nil, &commonerrors.UnsupportedError{Pallet: intent.Pallet}
	}

	runtimeArgs, ok := prober.CallArguments(intent.Pallet, intent.Method)
	if !ok {
		return nil, &commonerrors.UnsupportedError{Pallet: intent.Pallet, Method: intent.Method}
	}

	callIndex, err := prober.CallIndex(intent.Pallet, intent.Method)
	if err != nil {
		return nil, err
	}

	failures := make([]commonerrors.CandidateFailure, 0, len(candidates))

	for _, candidate := range candidates {
		call, err := tryCandidate(callIndex, runtimeArgs, candidate)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"pallet":    intent.Pallet,
				"call":      intent.Method,
				"candidate": candidate.Label,
				"reason":    err,
			}).Debug("Call candidate rejected")

			failures = append(failures, commonerrors.CandidateFailure{
				Label:  candidate.Label,
				Reason: err.Error(),
			})
			continue
		}

		logger.WithFields(logrus.Fields{
			"pallet":    intent.Pallet,
			"call":      intent.Method,
			"candidate": candidate.Label,
		}).Debug("Call candidate accepted")

		return &commontypes.ResolvedCall{
			Label:  candidate.Label,
			Pallet: intent.Pallet,
			Method: intent.Method,
			Call:   *call,
		}, nil
	}

	return nil, &commonerrors.CallConstructionError{
		Pallet:   intent.Pallet,
		Method:   intent.Method,
		Failures: failures,
	}
}

// tryCandidate checks one candidate shape against the runtime's declared
// argument names and, on a match, SCALE-encodes the candidate's values into a
// runtime call object.
//
// Parameters:
// - callIndex: the located pallet and call indices.
// - runtimeArgs: the runtime's argument names in declaration order.
// - candidate: the candidate shape to check.
//
// Returns:
// - *gsrpctypes.Call: the constructed call.
// - error: an error describing why the shape was rejected.
func tryCandidate(
	callIndex commontypes.CallIndex,
	runtimeArgs []string,
	candidate commontypes.CallCandidate,
) (*gsrpctypes.Call, error) {
	if len(runtimeArgs) != len(candidate.Args) {
		return nil, errors.Errorf(
			"argument count mismatch: runtime declares %d arguments, candidate supplies %d",
			len(runtimeArgs), len(candidate.Args),
		)
	}

	for i, arg := range candidate.Args {
		if runtimeArgs[i] != arg.Name {
			return nil, errors.Errorf(
				"argument name mismatch at position %d: runtime declares %q, candidate supplies %q",
				i, runtimeArgs[i], arg.Name,
			)
		}
	}

	var buf bytes.Buffer
	encoder := scale.NewEncoder(&buf)

	for _, arg := range candidate.Args {
		if err := encoder.Encode(arg.Value); err != nil {
			return nil, errors.Wrapf(err, "failed to encode argument %s", arg.Name)
		}
	}

	return &gsrpctypes.Call{
		CallIndex: gsrpctypes.CallIndex{
			SectionIndex: callIndex.PalletIndex,
			MethodIndex:  callIndex.MethodIndex,
		},
		Args: gsrpctypes.Args(buf.Bytes()),
	}, nil
}
