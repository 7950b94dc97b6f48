package types

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	gsrpctypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/ethereum/go-ethereum/common"
)

// Weight is the two-dimensional execution weight of a call: computation time
// and proof size. Both components encode as SCALE compacts.
type Weight struct {
	RefTime   gsrpctypes.UCompact
	ProofSize gsrpctypes.UCompact
}

// NewWeight creates a Weight from raw ref-time and proof-size components.
//
// Parameters:
// - refTime: the computation time component.
// - proofSize: the proof size component.
//
// Returns:
// - Weight: the weight value.
func NewWeight(refTime uint64, proofSize uint64) Weight {
	return Weight{
		RefTime:   gsrpctypes.NewUCompactFromUInt(refTime),
		ProofSize: gsrpctypes.NewUCompactFromUInt(proofSize),
	}
}

// OptionU128 is a SCALE Option<u128>.
type OptionU128 struct {
	hasValue bool
	value    gsrpctypes.U128
}

// NewOptionU128 creates an OptionU128 holding a value.
func NewOptionU128(value gsrpctypes.U128) OptionU128 {
	return OptionU128{hasValue: true, value: value}
}

// NewOptionU128Empty creates an empty OptionU128.
func NewOptionU128Empty() OptionU128 {
	return OptionU128{}
}

// Encode implements SCALE encoding for the option.
func (o OptionU128) Encode(encoder scale.Encoder) error {
	return encoder.EncodeOption(o.hasValue, o.value)
}

// ReviveCallParams are the semantic parameters of a contract settlement call
// against the revive pallet.
//
// Fields:
// - Dest: the destination contract address (20-byte, chain-native width).
// - Value: the transfer value in the chain's base unit (u128).
// - GasLimit: the execution weight limit.
// - StorageDepositLimit: the storage deposit cap; nil means unlimited.
// - Data: the opaque ABI-encoded input payload, produced externally.
type ReviveCallParams struct {
	Dest                common.Address
	Value               *big.Int
	GasLimit            Weight
	StorageDepositLimit *big.Int
	Data                []byte
}
