package callbuilder

import (
	"math/big"

	gsrpctypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"

	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

const (
	// RevivePallet is the contract-execution pallet targeted by settlement calls.
	RevivePallet = "Revive"
	// ReviveCallMethod is the contract invocation call on the revive pallet.
	ReviveCallMethod = "call"
	// ReviveMapAccountMethod is the account-mapping call on the revive pallet.
	ReviveMapAccountMethod = "map_account"
)

// Candidate labels for the revive contract call, in priority order. Earlier
// labels correspond to more common or newer runtime shapes; the order is part
// of the contract and must not be reshuffled.
const (
	// CandidateStorageDepositData is the five-field shape with a dedicated
	// storage_deposit_limit field and the payload under "data".
	CandidateStorageDepositData = "call/storage_deposit+data"
	// CandidateStorageDepositInputData is the same five fields with the
	// payload under the alternate name "input_data".
	CandidateStorageDepositInputData = "call/storage_deposit+input_data"
	// CandidateNoStorageDeposit is the four-field shape omitting the storage
	// deposit limit entirely.
	CandidateNoStorageDeposit = "call/no_storage_deposit"
	// CandidateMapAccount is the zero-argument account-mapping shape.
	CandidateMapAccount = "map_account"
)

// ReviveCallIntent returns the call intent for a contract settlement call.
func ReviveCallIntent() commontypes.CallIntent {
	return commontypes.CallIntent{Pallet: RevivePallet, Method: ReviveCallMethod}
}

// MapAccountIntent returns the call intent for the account-mapping call.
func MapAccountIntent() commontypes.CallIntent {
	return commontypes.CallIntent{Pallet: RevivePallet, Method: ReviveMapAccountMethod}
}

// ReviveCallCandidates builds the candidate shapes for a contract settlement
// call, in priority order: the full five-field shape with a storage deposit
// limit, the same shape with the payload under "input_data", and the legacy
// four-field shape without a storage deposit limit.
//
// Parameters:
// - params: the semantic call parameters.
//
// Returns:
// - []commontypes.CallCandidate: the ordered candidate shapes.
func ReviveCallCandidates(params *commontypes.ReviveCallParams) []commontypes.CallCandidate {
	dest := gsrpctypes.NewH160(params.Dest.Bytes())

	value := params.Value
	if value == nil {
		value = new(big.Int)
	}
	transferValue := gsrpctypes.NewUCompact(value)

	deposit := commontypes.NewOptionU128Empty()
	if params.StorageDepositLimit != nil {
		deposit = commontypes.NewOptionU128(gsrpctypes.NewU128(*params.StorageDepositLimit))
	}

	data := gsrpctypes.NewBytes(params.Data)

	return []commontypes.CallCandidate{
		{
			Label: CandidateStorageDepositData,
			Args: []commontypes.CallArg{
				{Name: "dest", Value: dest},
				{Name: "value", Value: transferValue},
				{Name: "gas_limit", Value: params.GasLimit},
				{Name: "storage_deposit_limit", Value: deposit},
				{Name: "data", Value: data},
			},
		},
		{
			Label: CandidateStorageDepositInputData,
			Args: []commontypes.CallArg{
				{Name: "dest", Value: dest},
				{Name: "value", Value: transferValue},
				{Name: "gas_limit", Value: params.GasLimit},
				{Name: "storage_deposit_limit", Value: deposit},
				{Name: "input_data", Value: data},
			},
		},
		{
			Label: CandidateNoStorageDeposit,
			Args: []commontypes.CallArg{
				{Name: "dest", Value: dest},
				{Name: "value", Value: transferValue},
				{Name: "gas_limit", Value: params.GasLimit},
				{Name: "data", Value: data},
			},
		},
	}
}

// MapAccountCandidates returns the single candidate shape for the
// account-mapping call, which takes no arguments.
func MapAccountCandidates() []commontypes.CallCandidate {
	return []commontypes.CallCandidate{
		{Label: CandidateMapAccount, Args: []commontypes.CallArg{}},
	}
}
