package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// configureLogger builds a logger whose level is taken from --log-level,
// defaulting to a level quiet enough that a normal parse run prints
// nothing but the report dump itself. Mirrors the shape of a BLE CLI's
// configureLogger, minus the --verbose fallback this tool has no need for.
func configureLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level := logrus.WarnLevel

	levelStr, _ := cmd.Flags().GetString("log-level")
	if levelStr != "" {
		parsed, err := logrus.ParseLevel(levelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelStr, err)
		}
		level = parsed
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger, nil
}
