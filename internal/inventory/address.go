package inventory

import "nathanbeddoewebdev/nova-inventory/internal/domain"

// classifyAddresses splits the addresses of a server's first network into
// fixed (private) and floating (public) lists, preserving order. Addresses
// on any other network are ignored: multi-NIC servers are reached through
// whichever network the API lists first.
func classifyAddresses(networks []domain.Network) (private, public []string) {
	if len(networks) == 0 {
		return nil, nil
	}
	for _, a := range networks[0].Addresses {
		switch a.Type {
		case domain.AddressFixed:
			private = append(private, a.Addr)
		case domain.AddressFloating:
			public = append(public, a.Addr)
		}
	}
	return private, public
}

// sshAddress picks the first private or public address. ok is false when
// the chosen list is empty.
func sshAddress(private, public []string, usePrivate bool) (addr string, ok bool) {
	candidates := public
	if usePrivate {
		candidates = private
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[0], true
}
