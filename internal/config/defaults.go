package config

import (
	_ "embed"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultConfig returns the hardcoded default configuration, used when
// no config file exists and the embedded default cannot be parsed.
func DefaultConfig() Config {
	return Config{
		DBPath:    "~/.memory/memory.db",
		RelaxMode: false,
	}
}
