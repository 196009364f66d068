// rdporders inspects capture files of RDP drawing-order updates: binary
// files holding length-prefixed orders-update payloads as produced by a
// capturing proxy or the gateway's session recorder.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kulaginds/rdp-orders/internal/logging"
)

var (
	logLevelFlag string
	relaxedFlag  bool
	capsFlag     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rdporders",
		Short: "Inspect captured RDP drawing-order streams",
		Long: `rdporders decodes capture files of RDP graphics updates.

A capture file is a sequence of frames, each a 4-byte little-endian
payload length followed by that many bytes of orders-update payload
(the body of a TS_FP_UPDATE_ORDERS update). All frames of one file are
decoded with a single decoder, preserving the differential order state
across updates the way a live connection would.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Default().SetLevelFromString(logLevelFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&relaxedFlag, "relaxed", false, "accept orders that were never announced")
	rootCmd.PersistentFlags().StringVar(&capsFlag, "caps", "", "file holding serialized capability sets to negotiate against")

	rootCmd.AddCommand(
		dumpCmd(),
		statsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
