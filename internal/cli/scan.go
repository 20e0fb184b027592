package cli

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"arpscout/internal/export"
	"arpscout/internal/netinfo"
	"arpscout/internal/oui"
	"arpscout/internal/report"
	"arpscout/internal/resolve"
	"arpscout/internal/scan"
)

// probeTimePerAddress scales the default timeout with the size of the
// probed address space so large ranges are not cut short.
const probeTimePerAddress = 5 * time.Millisecond

var (
	scanIface      string
	scanNetworks   []string
	scanTimeout    time.Duration
	scanPassive    bool
	scanResolve    bool
	scanMDNS       bool
	scanSourceIPv4 string
	scanDestMAC    string
	scanOutput     string
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the local network for live hosts",
	Long: `Probe one or more IPv4 networks with ARP requests and report every
host that answers. Without --network the subnet of the selected interface is
scanned; without --iface the first usable interface is selected.`,
	Example: `  arpscout scan
  arpscout scan --iface eth0 --resolve
  arpscout scan --network 192.168.1.0/24 --network 10.0.0.0/29
  arpscout scan --output json > hosts.json`,
	Run: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanIface, "iface", "", "interface name (e.g. eth0)")
	scanCmd.Flags().StringArrayVar(&scanNetworks, "network", nil, "IPv4 network to probe (repeatable, e.g. 192.168.1.0/24)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 3*time.Second, "scan timeout (e.g. 3s)")
	scanCmd.Flags().BoolVar(&scanPassive, "passive", false, "passive only (no ARP injection)")
	scanCmd.Flags().BoolVar(&scanResolve, "resolve", false, "resolve hostnames (reverse DNS)")
	scanCmd.Flags().BoolVar(&scanMDNS, "mdns", true, "include an mDNS sweep when resolving hostnames")
	scanCmd.Flags().StringVar(&scanSourceIPv4, "source-ipv4", "", "force the ARP source IPv4 address")
	scanCmd.Flags().StringVar(&scanDestMAC, "dest-mac", "", "force the ARP destination MAC address")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "table", "output format: table, json, yaml, csv")
}

func runScan(cmd *cobra.Command, _ []string) {
	log := newLogger()
	warnIfNotRoot(log)

	opts, err := buildScanOptions()
	if err != nil {
		fatalf("%v", err)
	}

	sctx, err := scan.NewContext(opts)
	if err != nil {
		fatalf("%v", err)
	}

	networks := opts.Networks
	if len(networks) == 0 {
		networks = []netip.Prefix{sctx.Subnet}
	}

	// Sizing the address space up front both rejects IPv6 targets early
	// and keeps the default timeout realistic for large ranges.
	addressCount, err := netinfo.TotalAddressCount(networks)
	if err != nil {
		fatalf("%v", err)
	}
	log.Debug().Uint64("addresses", addressCount).Msg("computed scan size")
	if !cmd.Flags().Changed("timeout") {
		opts.Timeout = estimateTimeout(opts.Timeout, addressCount)
	}

	scanner := scan.NewScanner(sctx, opts, log)

	if scanOutput == "table" {
		report.Prescan(os.Stdout, networks, sctx.Iface, opts)
	}

	targets, summary, err := runScanner(scanner, opts)
	if err != nil {
		fatalf("%v", err)
	}

	oui.Enrich(targets)
	resolve.Hostnames(targets, sctx.OSIface, opts)

	emit(summary, targets, opts, log)
}

func buildScanOptions() (scan.Options, error) {
	opts := scan.Options{
		IfaceName:       scanIface,
		Timeout:         scanTimeout,
		ResolveHostname: scanResolve,
		MDNS:            scanMDNS,
	}

	for _, raw := range scanNetworks {
		pfx, err := netip.ParsePrefix(raw)
		if err != nil {
			return scan.Options{}, fmt.Errorf("invalid network %q: %w", raw, err)
		}
		opts.Networks = append(opts.Networks, pfx.Masked())
	}

	if scanSourceIPv4 != "" {
		addr, err := netip.ParseAddr(scanSourceIPv4)
		if err != nil || !addr.Is4() {
			return scan.Options{}, fmt.Errorf("invalid source IPv4 %q", scanSourceIPv4)
		}
		opts.SourceIPv4 = addr
	}

	if scanDestMAC != "" {
		mac, err := net.ParseMAC(scanDestMAC)
		if err != nil {
			return scan.Options{}, fmt.Errorf("invalid destination MAC %q: %w", scanDestMAC, err)
		}
		opts.DestinationMAC = mac
	}

	return opts, nil
}

func estimateTimeout(base time.Duration, addressCount uint64) time.Duration {
	estimated := time.Duration(addressCount) * probeTimePerAddress
	if estimated < base {
		return base
	}
	return estimated
}

func runScanner(scanner scan.Scanner, opts scan.Options) ([]scan.Target, scan.Summary, error) {
	if scanPassive {
		return scanner.Passive()
	}
	return scanner.Scan()
}

func emit(summary scan.Summary, targets []scan.Target, opts scan.Options, log zerolog.Logger) {
	switch scanOutput {
	case "table":
		report.Results(os.Stdout, summary, targets, opts)
	case "json":
		out, err := export.JSON(summary, targets)
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Println(out)
	case "yaml":
		out, err := export.YAML(summary, targets)
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Print(out)
	case "csv":
		out, err := export.CSV(summary, targets)
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Print(out)
	default:
		fatalf("unknown output format %q (expected table, json, yaml or csv)", scanOutput)
	}
	log.Debug().Int("hosts", len(targets)).Msg("scan complete")
}
