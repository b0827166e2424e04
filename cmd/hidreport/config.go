package main

import "github.com/mcuadros/go-defaults"

// Config holds the parse command's tunables. MaxInputBytes guards against
// feeding this tool a pathological hex blob; ReportDescriptor parsing is
// already bounded by input length (spec.md §5), but the CLI adds its own
// ceiling so a mistyped --in doesn't try to hex-decode an arbitrarily
// large file before failing.
type Config struct {
	MaxInputBytes int  `default:"65536"`
	ShowOffsets   bool `default:"true"`
	Color         bool `default:"true"`
}

func newConfig() *Config {
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	return cfg
}
