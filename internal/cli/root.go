// Package cli implements the arpscout command-line interface. It is the
// process boundary: the library layers below return typed errors, and this
// package turns the non-recoverable ones (unsupported input, serialization
// failures) into a stderr diagnostic and exit status 1.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "arpscout",
	Short: "ARP-based local network host discovery",
	Long: `Arpscout discovers live hosts on IPv4 subnets by address-resolution
probing. It scans the local segment, enriches the results with vendor and
hostname information, and reports them as a table or as JSON, YAML or CSV.`,
	Version: getVersion(),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)
}

// newLogger builds the diagnostics logger. User-facing output goes to
// stdout; the logger stays on stderr so exports remain machine-readable.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// fatalf reports a non-recoverable error and terminates the process.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// warnIfNotRoot flags the usual cause of empty scan results. ARP injection
// and capture need raw socket privileges on every supported platform.
func warnIfNotRoot(log zerolog.Logger) {
	if os.Geteuid() != 0 {
		log.Warn().Msg("not running as root, results may be incomplete")
	}
}
