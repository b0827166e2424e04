package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hidreport",
	Short: "Parse HID Report Descriptors",
	Long: `hidreport parses a HID Report Descriptor byte stream into its
input/output/feature reports and prints the fields each one carries.

It reads the descriptor as a hex string, either from a file (--in) or
from stdin, and never talks to a USB or Bluetooth device directly —
descriptor bytes are expected to already have been captured by
whatever transport the caller uses.`,
}

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hidreport: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}
