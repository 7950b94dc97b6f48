package substrate

import (
	gsrpctypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"

	commonerrors "github.com/VaultRelay/parachain-lib/common/errors"
	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

// callCapabilities holds the resolved location and argument names of one call.
type callCapabilities struct {
	index uint8
	args  []string
}

// palletCapabilities holds the resolved location and calls of one pallet.
type palletCapabilities struct {
	index uint8
	calls map[string]callCapabilities
}

// snapshotProber answers capability questions against one decoded metadata
// snapshot. The snapshot is walked once at construction; probing afterwards is
// local and never touches the network.
type snapshotProber struct {
	pallets map[string]palletCapabilities
}

// NewSnapshotProber builds a capability prober from a runtime metadata
// snapshot. Metadata below v14 is rejected: earlier versions carry no
// argument-name registry, so candidate shapes cannot be checked against them.
//
// Parameters:
// - meta: the decoded runtime metadata.
//
// Returns:
// - commontypes.CapabilityProber: the prober over the snapshot.
// - error: an error if the metadata version is below v14.
func NewSnapshotProber(meta *gsrpctypes.Metadata) (commontypes.CapabilityProber, error) {
	if meta.Version != 14 {
		return nil, errors.Errorf("unsupported metadata version %d: capability probing requires v14", meta.Version)
	}

	pallets := make(map[string]palletCapabilities, len(meta.AsMetadataV14.Pallets))

	for _, pallet := range meta.AsMetadataV14.Pallets {
		entry := palletCapabilities{
			index: uint8(pallet.Index),
			calls: make(map[string]callCapabilities),
		}

		if pallet.HasCalls {
			callType, ok := meta.AsMetadataV14.EfficientLookup[pallet.Calls.Type.Int64()]
			if ok && callType.Def.IsVariant {
				for _, variant := range callType.Def.Variant.Variants {
					args := make([]string, 0, len(variant.Fields))
					for _, field := range variant.Fields {
						name := ""
						if field.HasName {
							name = string(field.Name)
						}
						args = append(args, name)
					}

					entry.calls[string(variant.Name)] = callCapabilities{
						index: uint8(variant.Index),
						args:  args,
					}
				}
			}
		}

		pallets[string(pallet.Name)] = entry
	}

	return &snapshotProber{pallets: pallets}, nil
}

// HasPallet reports whether the named pallet exists in the snapshot.
func (p *snapshotProber) HasPallet(pallet string) bool {
	_, ok := p.pallets[pallet]
	return ok
}

// HasCall reports whether the named call exists on the named pallet.
func (p *snapshotProber) HasCall(pallet string, method string) bool {
	entry, ok := p.pallets[pallet]
	if !ok {
		return false
	}
	_, ok = entry.calls[method]
	return ok
}

// CallArguments returns the runtime's argument field names for the call in
// declaration order, or false if the call is absent from the snapshot.
func (p *snapshotProber) CallArguments(pallet string, method string) ([]string, bool) {
	entry, ok := p.pallets[pallet]
	if !ok {
		return nil, false
	}

	call, ok := entry.calls[method]
	if !ok {
		return nil, false
	}

	args := make([]string, len(call.args))
	copy(args, call.args)
	return args, true
}

// CallIndex returns the pallet and call variant indices for the call.
//
// Parameters:
// - pallet: the pallet name.
// - method: the call name.
//
// Returns:
// - commontypes.CallIndex: the located indices.
// - error: an UnsupportedError if the pallet or call is absent.
func (p *snapshotProber) CallIndex(pallet string, method string) (commontypes.CallIndex, error) {
	entry, ok := p.pallets[pallet]
	if !ok {
		return commontypes.CallIndex{}, &commonerrors.UnsupportedError{Pallet: pallet}
	}

	call, ok := entry.calls[method]
	if !ok {
		return commontypes.CallIndex{}, &commonerrors.UnsupportedError{Pallet: pallet, Method: method}
	}

	return commontypes.CallIndex{PalletIndex: entry.index, MethodIndex: call.index}, nil
}
