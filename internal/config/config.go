// Package config carries the tunable parameters for bmgrep. Defaults are
// built in code; an optional .bmgrep.toml overrides them, and CLI flags
// override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/seekfast/bmgrep/internal/bmsearch"
	bmerrors "github.com/seekfast/bmgrep/internal/errors"
)

// DefaultConfigFile is the config file name looked up when no --config flag
// is given.
const DefaultConfigFile = ".bmgrep.toml"

type Config struct {
	Search Search `toml:"search"`
	Watch  Watch  `toml:"watch"`
	Scan   Scan   `toml:"scan"`
}

type Search struct {
	// MaxWorkers caps the number of concurrent chunk scanners per search.
	// The coordinator may use fewer (down to 1) for small buffers.
	MaxWorkers int `toml:"max_workers"`

	// Overlap extends chunks by pattern length minus one so matches that
	// straddle a chunk boundary are found. Changes scan cost; off by
	// default to match the documented non-overlapping behavior.
	Overlap bool `toml:"overlap"`
}

type Watch struct {
	// DebounceMs is the quiet period after a file change before the
	// search re-runs.
	DebounceMs int `toml:"debounce_ms"`
}

type Scan struct {
	// MaxParallelFiles bounds how many files are searched at once in
	// multi-file mode. 0 = auto-detect (NumCPU).
	MaxParallelFiles int `toml:"max_parallel_files"`

	// Exclude lists glob patterns for files to skip in multi-file mode.
	Exclude []string `toml:"exclude"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: Search{
			MaxWorkers: bmsearch.DefaultMaxWorkers,
			Overlap:    false,
		},
		Watch: Watch{
			DebounceMs: 300,
		},
		Scan: Scan{
			MaxParallelFiles: 0, // 0 = auto-detect (NumCPU)
			Exclude: []string{
				"**/.git/**",
				"**/node_modules/**",
				"**/vendor/**",
			},
		},
	}
}

// Load reads configuration from path, layered over the defaults. A missing
// file is not an error: the defaults are returned as-is. A present but
// unreadable or malformed file is a *errors.ConfigError.
func Load(path string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, bmerrors.NewConfigError(path, err)
	}

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, bmerrors.NewConfigError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, bmerrors.NewConfigError(path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Search.MaxWorkers <= 0 {
		return fmt.Errorf("search.max_workers must be greater than 0, got %d", c.Search.MaxWorkers)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	if c.Scan.MaxParallelFiles < 0 {
		return fmt.Errorf("scan.max_parallel_files must not be negative, got %d", c.Scan.MaxParallelFiles)
	}
	return nil
}

// EffectiveParallelFiles resolves the multi-file concurrency limit,
// substituting NumCPU for the auto-detect value.
func (c *Config) EffectiveParallelFiles() int {
	if c.Scan.MaxParallelFiles > 0 {
		return c.Scan.MaxParallelFiles
	}
	return runtime.NumCPU()
}
