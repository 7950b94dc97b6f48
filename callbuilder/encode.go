package callbuilder

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/ethereum/go-ethereum/common/hexutil"

	commonerrors "github.com/VaultRelay/parachain-lib/common/errors"
	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

// Encode serializes a resolved (or composed) call into its canonical SCALE
// bytes and their 0x-prefixed hex presentation. Encoding is all-or-nothing
// and deterministic: identical inputs always yield identical bytes.
//
// Parameters:
// - call: the resolved call to serialize.
//
// Returns:
// - *commontypes.EncodedCall: the immutable encoded result.
// - error: an EncodeError if serialization fails, which indicates a deeper
//   metadata inconsistency.
func Encode(call *commontypes.ResolvedCall) (*commontypes.EncodedCall, error) {
	encoded, err := codec.Encode(call.Call)
	if err != nil {
		return nil, &commonerrors.EncodeError{Err: err}
	}

	return &commontypes.EncodedCall{
		Bytes: encoded,
		Hex:   hexutil.Encode(encoded),
	}, nil
}
