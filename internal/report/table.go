package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"arpscout/internal/scan"
)

const (
	minHostnameWidth = 15
	minVendorWidth   = 15
)

var noHosts = color.New(color.FgRed)

// nameState is the exhaustive set of hostname cell outcomes: a resolved
// name, resolution switched off, or an enabled lookup that found nothing.
type nameState int

const (
	nameResolved nameState = iota
	nameDisabled
	nameUnresolved
)

func hostnameStateOf(hostname string, resolveEnabled bool) nameState {
	switch {
	case hostname != "":
		return nameResolved
	case !resolveEnabled:
		return nameDisabled
	default:
		return nameUnresolved
	}
}

func hostnameCell(t scan.Target, opts scan.Options) string {
	switch hostnameStateOf(t.Hostname, opts.ResolveHostname) {
	case nameResolved:
		return t.Hostname
	case nameDisabled:
		return "(disabled)"
	default:
		return ""
	}
}

// columnWidths sizes the hostname and vendor columns: at least the minimum,
// widened to the longest value present. Values are never truncated.
func columnWidths(targets []scan.Target) (hostnameWidth, vendorWidth int) {
	hostnameWidth = minHostnameWidth
	vendorWidth = minVendorWidth
	for _, t := range targets {
		if len(t.Hostname) > hostnameWidth {
			hostnameWidth = len(t.Hostname)
		}
		if len(t.Vendor) > vendorWidth {
			vendorWidth = len(t.Vendor)
		}
	}
	return hostnameWidth, vendorWidth
}

// Results displays the discovered targets as an aligned table sorted by
// IPv4, followed by the host count, elapsed time and packet counters.
func Results(w io.Writer, summary scan.Summary, targets []scan.Target, opts scan.Options) {
	sorted := make([]scan.Target, len(targets))
	copy(sorted, targets)
	scan.SortByIPv4(sorted)

	hostnameWidth, vendorWidth := columnWidths(sorted)

	if len(sorted) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "| %-15s | %-18s | %-*s | %-*s |\n",
			"IPv4", "MAC", hostnameWidth, "Hostname", vendorWidth, "Vendor")
		fmt.Fprintf(w, "|-----------------|--------------------|-%s-|-%s-|\n",
			strings.Repeat("-", hostnameWidth), strings.Repeat("-", vendorWidth))
	}

	for _, t := range sorted {
		fmt.Fprintf(w, "| %-15s | %-18s | %-*s | %-*s |\n",
			t.IPv4, t.MAC, hostnameWidth, hostnameCell(t, opts), vendorWidth, t.Vendor)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "ARP scan finished, %s in %.3f seconds\n",
		hostsPhrase(len(sorted)), float64(summary.DurationMs)/1000)
	fmt.Fprintf(w, "%s, %s\n", packetsPhrase(summary.PacketCount), arpPhrase(summary.ARPCount))
	fmt.Fprintln(w)
}

func hostsPhrase(count int) string {
	switch count {
	case 0:
		return noHosts.Sprint("no hosts found")
	case 1:
		return "1 host found"
	default:
		return fmt.Sprintf("%d hosts found", count)
	}
}

func packetsPhrase(count uint) string {
	switch count {
	case 0:
		return "No packets received"
	case 1:
		return "1 packet received"
	default:
		return fmt.Sprintf("%d packets received", count)
	}
}

func arpPhrase(count uint) string {
	switch count {
	case 0:
		return "no ARP packets filtered"
	case 1:
		return "1 ARP packet filtered"
	default:
		return fmt.Sprintf("%d ARP packets filtered", count)
	}
}
