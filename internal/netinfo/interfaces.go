// Package netinfo wraps the OS network interface list behind a
// fixture-friendly catalog and computes IPv4 address-space sizes. The
// selection and readiness policies here decide which interface a scan runs
// on when the operator does not pick one.
package netinfo

import (
	"fmt"
	"io"
	"net"
	"net/netip"

	"github.com/fatih/color"
)

var (
	upMark   = color.New(color.FgGreen)
	downMark = color.New(color.FgRed)
)

// Interface is a catalog view of one OS network interface. Addrs keeps the
// OS-reported order; the first-match policies below depend on it.
type Interface struct {
	Index    int
	Name     string
	MAC      net.HardwareAddr
	Addrs    []netip.Prefix
	Up       bool
	Loopback bool
}

// Ready reports the loose "probably scannable" eligibility shown in the
// interface listing: up, not loopback, at least one IP. It deliberately does
// NOT require a MAC or an IPv4 address; SelectDefault is stricter because it
// has to pick a single interface that ARP can actually use.
func (ifc Interface) Ready() bool {
	return ifc.Up && !ifc.Loopback && len(ifc.Addrs) > 0
}

// FirstIPv4 returns the first assigned IPv4 prefix, if any.
func (ifc Interface) FirstIPv4() (netip.Prefix, bool) {
	for _, pfx := range ifc.Addrs {
		if pfx.Addr().Is4() {
			return pfx, true
		}
	}
	return netip.Prefix{}, false
}

func (ifc Interface) hasIPv4() bool {
	_, ok := ifc.FirstIPv4()
	return ok
}

// List enumerates the OS interfaces, preserving the OS-reported order of
// both the interfaces and their addresses.
func List() ([]Interface, error) {
	osIfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]Interface, 0, len(osIfaces))
	for i := range osIfaces {
		osIface := &osIfaces[i]

		ifc := Interface{
			Index:    osIface.Index,
			Name:     osIface.Name,
			MAC:      osIface.HardwareAddr,
			Up:       osIface.Flags&net.FlagUp != 0,
			Loopback: osIface.Flags&net.FlagLoopback != 0,
		}

		addrs, err := osIface.Addrs()
		if err != nil {
			return nil, fmt.Errorf("list addresses of %s: %w", osIface.Name, err)
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			pfx, err := netip.ParsePrefix(ipnet.String())
			if err != nil {
				continue
			}
			ifc.Addrs = append(ifc.Addrs, pfx)
		}

		out = append(out, ifc)
	}
	return out, nil
}

// ByName finds an interface by its OS name.
func ByName(ifaces []Interface, name string) (Interface, error) {
	for _, ifc := range ifaces {
		if ifc.Name == name {
			return ifc, nil
		}
	}
	return Interface{}, fmt.Errorf("no such network interface: %s", name)
}

// SelectDefault returns the first interface, in OS order, that a scan can
// use without any operator input: it must have a MAC address, at least one
// assigned IP, be up, not be the loopback, and carry at least one IPv4
// address. First match wins; there is no ranking.
func SelectDefault(ifaces []Interface) (Interface, bool) {
	for _, ifc := range ifaces {
		if ifc.MAC == nil {
			continue
		}
		if len(ifc.Addrs) == 0 || !ifc.Up || ifc.Loopback {
			continue
		}
		if !ifc.hasIPv4() {
			continue
		}
		return ifc, true
	}
	return Interface{}, false
}

// RenderList prints every interface with the technical details needed to
// pick one for a scan, followed by a readiness count and the default choice.
func RenderList(w io.Writer, ifaces []Interface) {
	interfaceCount := 0
	readyCount := 0

	fmt.Fprintln(w)
	for _, ifc := range ifaces {
		upText := downMark.Sprint("✖") + " DOWN"
		if ifc.Up {
			upText = upMark.Sprint("✔") + " UP"
		}

		macText := "No MAC address"
		if ifc.MAC != nil {
			macText = ifc.MAC.String()
		}

		firstIP := ""
		if len(ifc.Addrs) > 0 {
			firstIP = ifc.Addrs[0].String()
		}

		fmt.Fprintf(w, "%-20s %-18s %-20s %s\n", ifc.Name, upText, macText, firstIP)

		interfaceCount++
		if ifc.Ready() {
			readyCount++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Found %d network interfaces, %d seems ready for ARP scans\n", interfaceCount, readyCount)
	if def, ok := SelectDefault(ifaces); ok {
		fmt.Fprintf(w, "Default network interface will be %s\n", def.Name)
	}
	fmt.Fprintln(w)
}
