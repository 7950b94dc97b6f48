package callbuilder

import (
	commonerrors "github.com/VaultRelay/parachain-lib/common/errors"
	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

// fakeCall describes one call of the fake runtime snapshot.
type fakeCall struct {
	index commontypes.CallIndex
	args  []string
}

// fakeProber is an in-memory capability prober used to stand in for a live
// metadata snapshot.
type fakeProber struct {
	calls map[string]map[string]fakeCall
}

func newFakeProber() *fakeProber {
	return &fakeProber{calls: make(map[string]map[string]fakeCall)}
}

func (p *fakeProber) addCall(pallet, method string, index commontypes.CallIndex, args ...string) *fakeProber {
	if p.calls[pallet] == nil {
		p.calls[pallet] = make(map[string]fakeCall)
	}
	p.calls[pallet][method] = fakeCall{index: index, args: args}
	return p
}

func (p *fakeProber) HasPallet(pallet string) bool {
	_, ok := p.calls[pallet]
	return ok
}

func (p *fakeProber) HasCall(pallet, method string) bool {
	_, ok := p.calls[pallet][method]
	return ok
}

func (p *fakeProber) CallArguments(pallet, method string) ([]string, bool) {
	call, ok := p.calls[pallet][method]
	if !ok {
		return nil, false
	}
	return call.args, true
}

func (p *fakeProber) CallIndex(pallet, method string) (commontypes.CallIndex, error) {
	call, ok := p.calls[pallet][method]
	if !ok {
		return commontypes.CallIndex{}, &commonerrors.UnsupportedError{Pallet: pallet, Method: method}
	}
	return call.index, nil
}
