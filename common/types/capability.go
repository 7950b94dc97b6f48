package types

// CallIndex locates a call inside the runtime: the pallet index and the call
// variant index within that pallet.
type CallIndex struct {
	PalletIndex uint8
	MethodIndex uint8
}

// CapabilityProber answers presence questions against one runtime metadata
// snapshot. Absence is a normal outcome, not an error: older or newer runtimes
// legitimately lack pallets and calls. Results are valid only for the snapshot
// in effect at probe time and must be re-evaluated after RefreshMetadata.
type CapabilityProber interface {
	// HasPallet reports whether the named pallet exists in the snapshot.
	HasPallet(pallet string) bool

	// HasCall reports whether the named call exists on the named pallet.
	HasCall(pallet string, method string) bool

	// CallArguments returns the runtime's argument field names for the call,
	// in declaration order. The second return is false if the call is absent
	// or the snapshot carries no argument names for it.
	CallArguments(pallet string, method string) ([]string, bool)

	// CallIndex returns the pallet and call variant indices for the call.
	//
	// Returns:
	// - CallIndex: the located indices.
	// - error: an error if the pallet or call is absent.
	CallIndex(pallet string, method string) (CallIndex, error)
}

// CapabilityFlags holds presence indicators for a pallet and a set of its
// calls, derived from one metadata snapshot.
type CapabilityFlags struct {
	Pallet        string
	PalletPresent bool
	Calls         map[string]bool
}

// ProbeCapabilities derives CapabilityFlags for a pallet and the given calls
// from a prober.
//
// Parameters:
// - prober: the capability prober for the current snapshot.
// - pallet: the pallet name to probe.
// - methods: the call names to probe on the pallet.
//
// Returns:
// - CapabilityFlags: presence indicators for the pallet and each call.
func ProbeCapabilities(prober CapabilityProber, pallet string, methods ...string) CapabilityFlags {
	flags := CapabilityFlags{
		Pallet:        pallet,
		PalletPresent: prober.HasPallet(pallet),
		Calls:         make(map[string]bool, len(methods)),
	}

	for _, method := range methods {
		flags.Calls[method] = flags.PalletPresent && prober.HasCall(pallet, method)
	}

	return flags
}
