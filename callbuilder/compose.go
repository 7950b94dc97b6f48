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

// composeConfig holds batch composition options.
type composeConfig struct {
	preference []commontypes.BatchStrategy
	leading    *leadingCall
}

// leadingCall describes an optional call prepended to the batch when the
// runtime supports it.
type leadingCall struct {
	intent     commontypes.CallIntent
	candidates []commontypes.CallCandidate
}

// ComposeOption configures batch composition.
type ComposeOption func(*composeConfig)

// WithStrategyPreference overrides the default batch strategy preference
// order. Selection still picks the first strategy the runtime exposes.
//
// Parameters:
// - preference: the strategies in descending preference order.
//
// Returns:
// - ComposeOption: the composition option.
func WithStrategyPreference(preference ...commontypes.BatchStrategy) ComposeOption {
	return func(c *composeConfig) {
		c.preference = preference
	}
}

// WithLeadingCall requests an extra call (e.g. account mapping) prepended
// before the supplied calls. The leading call is included only when present
// in the runtime; when absent, composition proceeds without it and the
// omission is logged, not raised.
//
// Parameters:
// - intent: the leading call's pallet and method.
// - candidates: the ordered candidate shapes for the leading call.
//
// Returns:
// - ComposeOption: the composition option.
func WithLeadingCall(intent commontypes.CallIntent, candidates []commontypes.CallCandidate) ComposeOption {
	return func(c *composeConfig) {
		c.leading = &leadingCall{intent: intent, candidates: candidates}
	}
}

// Compose wraps the resolved calls into the best batch primitive the runtime
// currently exposes. Strategies are probed in preference order, most tolerant
// first (force_batch continues past inner failures, batch_all and batch abort
// on the first one). Inner calls keep the supplied order exactly: batch
// semantics are order-sensitive and earlier calls execute first.
//
// Parameters:
// - logger: the logger for composition diagnostics.
// - prober: the capability prober for the connection's current snapshot.
// - calls: the resolved calls to batch, in execution order.
// - opts: optional composition configuration.
//
// Returns:
// - *commontypes.ResolvedCall: the outer batch call, labeled with the strategy.
// - error: ErrNoCallsToBatch for an empty batch, ErrBatchUnavailable if no
//   batch primitive is present, or a construction error from the leading call.
func Compose(
	logger *logrus.Logger,
	prober commontypes.CapabilityProber,
	calls []commontypes.ResolvedCall,
	opts ...ComposeOption,
) (*commontypes.ResolvedCall, error) {
	cfg := composeConfig{preference: commontypes.DefaultBatchPreference()}
	for _, opt := range opts {
		opt(&cfg)
	}

	inner := make([]gsrpctypes.Call, 0, len(calls)+1)

	if cfg.leading != nil {
		if !prober.HasCall(cfg.leading.intent.Pallet, cfg.leading.intent.Method) {
			logger.WithFields(logrus.Fields{
				"pallet": cfg.leading.intent.Pallet,
				"call":   cfg.leading.intent.Method,
			}).Warn("Leading call not available in runtime, composing batch without it")
		} else {
			resolved, err := Resolve(logger, prober, cfg.leading.intent, cfg.leading.candidates)
			if err != nil {
				return nil, err
			}
			inner = append(inner, resolved.Call)
		}
	}

	for _, call := range calls {
		inner = append(inner, call.Call)
	}

	if len(inner) == 0 {
		return nil, commonerrors.ErrNoCallsToBatch
	}

	methods := make([]string, len(cfg.preference))
	for i, strategy := range cfg.preference {
		methods[i] = strategy.Method()
	}
	flags := commontypes.ProbeCapabilities(prober, commontypes.UtilityPallet, methods...)

	var selected commontypes.BatchStrategy
	found := false
	for _, strategy := range cfg.preference {
		if flags.Calls[strategy.Method()] {
			selected = strategy
			found = true
			break
		}
	}
	if !found {
		return nil, commonerrors.ErrBatchUnavailable
	}

	callIndex, err := prober.CallIndex(commontypes.UtilityPallet, selected.Method())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := scale.NewEncoder(&buf).Encode(inner); err != nil {
		return nil, errors.Wrap(err, "failed to encode batched calls")
	}

	logger.WithFields(logrus.Fields{
		"strategy": selected,
		"calls":    len(inner),
	}).Debug("Batch composed")

	return &commontypes.ResolvedCall{
		Label:  selected.String(),
		Pallet: commontypes.UtilityPallet,
		Method: selected.Method(),
		Call: gsrpctypes.Call{
			CallIndex: gsrpctypes.CallIndex{
				SectionIndex: callIndex.PalletIndex,
				MethodIndex:  callIndex.MethodIndex,
			},
			Args: gsrpctypes.Args(buf.Bytes()),
		},
	}, nil
}
