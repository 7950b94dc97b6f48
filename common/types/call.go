package types

import (
	gsrpctypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// CallIntent is the semantic description of what is to be invoked: a pallet
// and a call on it. The argument values travel separately as CallCandidate
// hypotheses, because the runtime's actual argument shape is not known ahead
// of time.
type CallIntent struct {
	Pallet string
	Method string
}

// CallArg is one named, SCALE-encodable argument value of a candidate shape.
type CallArg struct {
	Name  string
	Value interface{}
}

// CallCandidate is one concrete hypothesis about how the intent's parameters
// map onto the runtime's actual argument names and order. Candidates are tried
// in slice order; earlier candidates represent more common or newer runtime
// shapes, and the order is part of the contract.
type CallCandidate struct {
	// Label identifies the candidate in diagnostics and on the resolved call.
	Label string
	// Args are the argument values in the order the shape declares them.
	Args []CallArg
}

// ArgNames returns the candidate's argument names in declaration order.
func (c CallCandidate) ArgNames() []string {
	names := make([]string, len(c.Args))
	for i, arg := range c.Args {
		names[i] = arg.Name
	}
	return names
}

// ResolvedCall is the outcome of candidate resolution or batch composition: a
// runtime-accepted call object together with the label of the candidate (or
// batch strategy) that produced it. Immutable once produced.
type ResolvedCall struct {
	Label  string
	Pallet string
	Method string
	Call   gsrpctypes.Call
}

// EncodedCall is the immutable canonical serialization of a resolved call:
// raw SCALE bytes and their 0x-prefixed hex presentation.
type EncodedCall struct {
	Bytes []byte
	Hex   string
}
