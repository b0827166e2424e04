package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gohid/hidreport"
)

var parseInputPath string

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a HID Report Descriptor given as a hex string",
	Long: `Reads a HID Report Descriptor as a hex string (whitespace-separated
bytes or one contiguous run, either is accepted) from --in or stdin,
parses it, and prints its input/output/feature reports field by field.`,
	Args: cobra.NoArgs,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseInputPath, "in", "", "path to a file containing the descriptor as hex (default: stdin)")
}

func runParse(cmd *cobra.Command, args []string) error {
	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	cfg := newConfig()

	raw, err := readInput(parseInputPath, cfg.MaxInputBytes)
	if err != nil {
		return err
	}

	data, err := decodeHex(raw)
	if err != nil {
		return fmt.Errorf("decoding hex input: %w", err)
	}
	logger.Debugf("decoded %d descriptor bytes", len(data))

	desc, err := hidreport.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing report descriptor: %w", err)
	}

	dumpReportDescriptor(cmd.OutOrStdout(), desc, cfg)
	return nil
}

func readInput(path string, maxBytes int) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	limited := io.LimitReader(r, int64(maxBytes)+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", err
	}
	if len(data) > maxBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxBytes)
	}
	return string(data), nil
}

func decodeHex(raw string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',':
			return -1
		}
		return r
	}, raw)
	return hex.DecodeString(cleaned)
}
