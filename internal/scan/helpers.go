package scan

import (
	"net"
	"net/netip"
	"sort"
	"time"

	"arpscout/internal/netinfo"
)

const (
	readErrorBackoff        = 20 * time.Millisecond
	maxConsecutiveReadFails = 25
)

// frameTally accumulates the two counters a scan reports: every captured
// frame, and the ARP subset that survived filtering.
type frameTally struct {
	packets uint
	arp     uint
}

func (ft *frameTally) observe(isARP bool) {
	ft.packets++
	if isARP {
		ft.arp++
	}
}

func (ft *frameTally) summary(start time.Time) Summary {
	return Summary{
		PacketCount: ft.packets,
		ARPCount:    ft.arp,
		DurationMs:  uint64(time.Since(start).Milliseconds()),
	}
}

// readGuard keeps a failing capture loop from spinning hot: each read error
// earns a short backoff, and an unbroken run of them abandons the scan with
// whatever was collected so far.
type readGuard struct {
	consecutive int
}

func (g *readGuard) failure() (backoff time.Duration, giveUp bool) {
	g.consecutive++
	return readErrorBackoff, g.consecutive >= maxConsecutiveReadFails
}

func (g *readGuard) success() {
	g.consecutive = 0
}

func addTarget(ip netip.Addr, mac net.HardwareAddr, targets map[netip.Addr]Target) {
	if _, ok := targets[ip]; ok {
		return
	}
	targets[ip] = Target{IPv4: ip, MAC: mac}
}

func collect(m map[netip.Addr]Target) []Target {
	out := make([]Target, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	return out
}

// SortByIPv4 orders targets ascending by address. The sort is stable so
// duplicate addresses keep their original relative order.
func SortByIPv4(targets []Target) {
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].IPv4.Less(targets[j].IPv4)
	})
}

// NewContext picks the interface a scanner binds to: the named one when the
// operator asked for it, the catalog default otherwise.
func NewContext(opts Options) (Context, error) {
	ifaces, err := netinfo.List()
	if err != nil {
		return Context{}, err
	}

	var chosen netinfo.Interface
	if opts.IfaceName != "" {
		chosen, err = netinfo.ByName(ifaces, opts.IfaceName)
		if err != nil {
			return Context{}, err
		}
	} else {
		var ok bool
		chosen, ok = netinfo.SelectDefault(ifaces)
		if !ok {
			return Context{}, errNoUsableInterface
		}
	}

	pfx, ok := chosen.FirstIPv4()
	if !ok {
		return Context{}, errNoIPv4Address
	}

	osIface, err := net.InterfaceByName(chosen.Name)
	if err != nil {
		return Context{}, err
	}

	return Context{
		Iface:   chosen,
		OSIface: osIface,
		Subnet:  pfx.Masked(),
		SelfIP:  pfx.Addr(),
	}, nil
}

// networksFor returns the networks a scan should probe, falling back to the
// subnet of the bound interface.
func networksFor(opts Options, ctx Context) []netip.Prefix {
	if len(opts.Networks) > 0 {
		return opts.Networks
	}
	return []netip.Prefix{ctx.Subnet}
}
