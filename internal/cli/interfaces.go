package cli

import (
	"os"

	"github.com/spf13/cobra"

	"arpscout/internal/netinfo"
)

// interfacesCmd represents the interfaces command.
var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List available network interfaces",
	Long: `Show every network interface known to the operating system with the
technical details needed to pick one for a scan: state, MAC address and
first assigned IP.`,
	Run: runInterfaces,
}

func init() {
	rootCmd.AddCommand(interfacesCmd)
}

func runInterfaces(_ *cobra.Command, _ []string) {
	ifaces, err := netinfo.List()
	if err != nil {
		fatalf("could not list network interfaces: %v", err)
	}
	netinfo.RenderList(os.Stdout, ifaces)
}
