package netinfo

import (
	"errors"
	"fmt"
	"net/netip"
)

// ErrIPv6Unsupported is returned when an IPv6 network reaches a code path
// that only makes sense for ARP, which has no IPv6 analogue.
var ErrIPv6Unsupported = errors.New("IPv6 networks are not supported by the ARP protocol")

// TotalAddressCount sums the address-space size of the given IPv4 networks,
// e.g. two /30 networks count 8 addresses. Any IPv6 network aborts the
// calculation with ErrIPv6Unsupported, wherever it sits in the list.
func TotalAddressCount(networks []netip.Prefix) (uint64, error) {
	var total uint64
	for _, network := range networks {
		if !network.Addr().Is4() {
			return 0, fmt.Errorf("%w (got %s)", ErrIPv6Unsupported, network)
		}
		total += uint64(1) << (32 - network.Bits())
	}
	return total, nil
}
