// Package resolve fills in target hostnames after a scan, first through the
// system resolver (reverse DNS) and then through an mDNS sweep for devices
// that only announce themselves via multicast.
package resolve

import (
	"context"
	"net"
	"strings"
	"time"

	"arpscout/internal/scan"
)

const reverseLookupTimeout = 500 * time.Millisecond

// Hostnames resolves names for every target that does not have one yet.
// It is a no-op when hostname resolution is disabled in the options.
func Hostnames(targets []scan.Target, iface *net.Interface, opts scan.Options) {
	if !opts.ResolveHostname {
		return
	}

	for i := range targets {
		if targets[i].Hostname != "" {
			continue
		}
		targets[i].Hostname = reverseLookup(targets[i].IPv4.String())
	}

	if opts.MDNS {
		mergeMDNS(targets, iface, opts.Timeout)
	}
}

// reverseLookup asks the system resolver for a PTR record. Lookup failures
// leave the hostname empty; an unresolved host is not an error.
func reverseLookup(ip string) string {
	ctx, cancel := context.WithTimeout(context.Background(), reverseLookupTimeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(ctx, ip)
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

func mergeMDNS(targets []scan.Target, iface *net.Interface, timeout time.Duration) {
	applyNames(targets, mdnsNameByIP(iface, timeout))
}

// applyNames fills in hostnames from an IP-to-name map without overwriting
// names learned earlier.
func applyNames(targets []scan.Target, nameByIP map[string]string) {
	if len(nameByIP) == 0 {
		return
	}

	for i := range targets {
		if targets[i].Hostname != "" {
			continue
		}
		if name, ok := nameByIP[targets[i].IPv4.String()]; ok {
			targets[i].Hostname = name
		}
	}
}
