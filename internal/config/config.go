// Package config provides YAML-based configuration loading for the
// memory game: database location, default play mode, and an optional
// custom card theme.
package config

// Config contains all user-tunable settings.
type Config struct {
	// DBPath is the location of the SQLite database. A leading ~ is
	// expanded by the storage layer.
	DBPath string `yaml:"db_path"`

	// RelaxMode makes relax (no caps) the default play mode.
	RelaxMode bool `yaml:"relax_mode"`

	// Theme optionally replaces the card symbol pool.
	Theme ThemeConfig `yaml:"theme"`
}

// ThemeConfig defines a custom card face set. Symbols must contain at
// least 16 distinct entries to cover the largest level; shorter or
// duplicated lists fall back to the built-in set.
type ThemeConfig struct {
	Symbols []string `yaml:"symbols"`
}
