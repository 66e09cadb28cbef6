// Package config loads CLI defaults from an optional .dialectrc.toml file,
// modeled on the teacher's internal/tqw struct-tag style and cmd/tqserver's
// environment-then-flag precedence convention (SPEC_FULL.md's AMBIENT STACK,
// "Configuration").
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// EnvRoundCap, if set, overrides the round cap default the same way
// TUNAQUEST_LISTEN_ADDRESS overrides the teacher's listen address: a config
// file value beats it, but an explicit CLI flag beats both.
const EnvRoundCap = "DIALECT_ROUND_CAP"

// Config holds the defaults a .dialectrc.toml file may set. Every field is
// a default only: cmd/dialect always lets an explicit CLI flag win.
type Config struct {
	Quiet       bool   `toml:"quiet"`
	Interactive bool   `toml:"interactive"`
	CacheDir    string `toml:"cache_dir"`
	RoundCap    int    `toml:"round_cap"`
}

// FileName is the config file basename searched for in the current
// directory and then $HOME.
const FileName = ".dialectrc.toml"

// Load searches the current directory, then $HOME, for FileName and decodes
// it. A missing file in both locations is not an error; Load returns the
// zero Config in that case. EnvRoundCap, if set and numeric, seeds RoundCap
// before the config file is read, so a round_cap key present in the file
// overwrites it, matching the doc comment on EnvRoundCap.
func Load() (Config, error) {
	var cfg Config

	if v := os.Getenv(EnvRoundCap); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RoundCap = n
		}
	}

	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, err
		}
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return cfg, nil
}
