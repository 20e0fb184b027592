package cli

import (
	"fmt"
	"net/netip"
	"os"
	"time"

	"github.com/spf13/cobra"

	"arpscout/internal/oui"
	"arpscout/internal/report"
	"arpscout/internal/resolve"
	"arpscout/internal/scan"
)

var (
	watchIface    string
	watchTimeout  time.Duration
	watchInterval time.Duration
	watchPassive  bool
	watchResolve  bool
	watchMDNS     bool
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously rescan and display the local network",
	Long: `Rescan the local segment at a fixed interval and keep an updated
table of every host seen so far. Hostname and vendor details learned in
earlier rounds are kept when a later round misses them.`,
	Example: `  arpscout watch
  arpscout watch --iface eth0 --interval 5s --resolve`,
	Run: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchIface, "iface", "", "interface name (e.g. eth0)")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 3*time.Second, "per-iteration timeout (e.g. 3s)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "refresh interval (e.g. 2s)")
	watchCmd.Flags().BoolVar(&watchPassive, "passive", false, "passive only (no ARP injection)")
	watchCmd.Flags().BoolVar(&watchResolve, "resolve", false, "resolve hostnames (reverse DNS)")
	watchCmd.Flags().BoolVar(&watchMDNS, "mdns", true, "include an mDNS sweep when resolving hostnames")
}

func runWatch(_ *cobra.Command, _ []string) {
	log := newLogger()
	warnIfNotRoot(log)

	opts := scan.Options{
		IfaceName:       watchIface,
		Timeout:         watchTimeout,
		Interval:        watchInterval,
		ResolveHostname: watchResolve,
		MDNS:            watchMDNS,
	}

	sctx, err := scan.NewContext(opts)
	if err != nil {
		fatalf("%v", err)
	}
	scanner := scan.NewScanner(sctx, opts, log)

	seen := map[netip.Addr]scan.Target{}

	for {
		var targets []scan.Target
		var summary scan.Summary
		if watchPassive {
			targets, summary, err = scanner.Passive()
		} else {
			targets, summary, err = scanner.Scan()
		}
		if err != nil {
			fatalf("%v", err)
		}

		oui.Enrich(targets)
		resolve.Hostnames(targets, sctx.OSIface, opts)

		merged := scan.MergeSeen(seen, targets)

		clearScreen()
		fmt.Printf("arpscout watch — iface=%s subnet=%s refresh=%s\n",
			sctx.Iface.Name, sctx.Subnet, opts.Interval)
		report.Results(os.Stdout, summary, merged, opts)

		time.Sleep(opts.Interval)
	}
}

func clearScreen() {
	fmt.Print("\033[2J\033[H")
}
