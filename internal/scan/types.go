// Package scan implements the ARP probe engine: it sends address-resolution
// requests across one or more IPv4 networks and collects the hosts that
// answer, together with packet counters and timing for the final report.
package scan

import (
	"net"
	"net/netip"
	"time"

	"arpscout/internal/netinfo"
)

// Target is a single discovered host. Hostname and Vendor stay empty until
// the enrichment passes fill them in; empty means "not known".
type Target struct {
	IPv4     netip.Addr
	MAC      net.HardwareAddr
	Hostname string
	Vendor   string
}

// Summary carries the scan-wide counters reported after a completed scan.
type Summary struct {
	PacketCount uint
	ARPCount    uint
	DurationMs  uint64
}

// Options is the read-only scan configuration built once from CLI flags and
// shared across the engine, the renderers and the exporters.
type Options struct {
	IfaceName       string
	Networks        []netip.Prefix // probe targets; empty means the interface subnet
	Timeout         time.Duration
	Interval        time.Duration // watch mode refresh period
	ResolveHostname bool
	MDNS            bool
	SourceIPv4      netip.Addr       // zero value: use the interface address
	DestinationMAC  net.HardwareAddr // nil: broadcast
}

// Context describes the interface a scanner was bound to.
type Context struct {
	Iface   netinfo.Interface
	OSIface *net.Interface
	Subnet  netip.Prefix
	SelfIP  netip.Addr
}

type Scanner interface {
	Scan() ([]Target, Summary, error)    // active (inject requests, collect replies)
	Passive() ([]Target, Summary, error) // listen-only
}
