// Package report renders the interactive output of a scan: the pre-scan
// settings summary and the final results table. Everything here writes plain
// text to an io.Writer and leaves its inputs untouched.
package report

import (
	"fmt"
	"io"
	"net/netip"
	"strings"

	"arpscout/internal/netinfo"
	"arpscout/internal/scan"
)

// maxPrescanNetworks caps how many network descriptors the pre-scan summary
// spells out before collapsing the rest into a "(N more)" suffix.
const maxPrescanNetworks = 5

// Prescan displays the scan settings before the scan starts: the selected
// interface with its target networks, plus any forced ARP field overrides.
func Prescan(w io.Writer, networks []netip.Prefix, iface netinfo.Interface, opts scan.Options) {
	shown := networks
	if len(shown) > maxPrescanNetworks {
		shown = shown[:maxPrescanNetworks]
	}

	descriptors := make([]string, 0, len(shown))
	for _, network := range shown {
		descriptors = append(descriptors, network.String())
	}

	networkList := strings.Join(descriptors, ", ")
	if len(networks) > maxPrescanNetworks {
		networkList += fmt.Sprintf(" (%d more)", len(networks)-maxPrescanNetworks)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Selected interface %s with IP %s\n", iface.Name, networkList)
	if opts.SourceIPv4.IsValid() {
		fmt.Fprintf(w, "The ARP source IPv4 will be forced to %s\n", opts.SourceIPv4)
	}
	if opts.DestinationMAC != nil {
		fmt.Fprintf(w, "The ARP destination MAC will be forced to %s\n", opts.DestinationMAC)
	}
}
