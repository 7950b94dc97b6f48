package types

// BatchStrategy identifies a utility batch primitive. The strategies differ in
// partial-failure semantics: force_batch continues past a failing inner call,
// batch_all and batch abort the whole bundle on the first failure.
type BatchStrategy string

const (
	// BatchStrategyForce represents Utility.force_batch (continue on failure).
	BatchStrategyForce BatchStrategy = "force_batch"
	// BatchStrategyAll represents Utility.batch_all (abort on failure).
	BatchStrategyAll BatchStrategy = "batch_all"
	// BatchStrategyPlain represents the legacy Utility.batch call.
	BatchStrategyPlain BatchStrategy = "batch"
)

// UtilityPallet is the pallet exposing the batch primitives.
const UtilityPallet = "Utility"

// String converts BatchStrategy to string representation.
func (s BatchStrategy) String() string {
	return string(s)
}

// Method returns the runtime call name of the strategy.
func (s BatchStrategy) Method() string {
	return string(s)
}

// DefaultBatchPreference returns the batch strategies in default preference
// order, most tolerant first. Selection picks the first strategy the runtime
// currently exposes.
func DefaultBatchPreference() []BatchStrategy {
	return []BatchStrategy{BatchStrategyForce, BatchStrategyAll, BatchStrategyPlain}
}
