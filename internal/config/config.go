// Package config loads simulator configuration (frame count, seeds,
// the chosen user algorithm): a thin github.com/spf13/viper wrapper
// that reads a config file plus environment overrides, with defaults
// matching the reference workload.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/biscuit-labs/pagingsim/internal/vmconst"
)

// Config is the set of knobs a workload run needs beyond the
// instruction stream itself.
type Config struct {
	Frames    int    `mapstructure:"frames"`
	Algorithm string `mapstructure:"algorithm"`
	OptSeed   uint64 `mapstructure:"opt_seed"`
	UserSeed  uint64 `mapstructure:"user_seed"`
}

// Default returns the reference configuration: 100 frames, FIFO, and
// seed 1 for both arms.
func Default() Config {
	return Config{
		Frames:    vmconst.RAMFrames,
		Algorithm: "fifo",
		OptSeed:   1,
		UserSeed:  1,
	}
}

// Load reads configuration from path (if non-empty) and from
// PAGINGSIM_-prefixed environment variables, falling back to
// Default() for anything unset.
func Load(path string) (Config, error) {
	v := viper.New()
	cfg := Default()

	v.SetDefault("frames", cfg.Frames)
	v.SetDefault("algorithm", cfg.Algorithm)
	v.SetDefault("opt_seed", cfg.OptSeed)
	v.SetDefault("user_seed", cfg.UserSeed)

	v.SetEnvPrefix("PAGINGSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %q", path)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}

// Validate checks that the configuration is usable, returning the
// resolved Algorithm on success.
func (c Config) Validate() (vmconst.Algorithm, error) {
	if c.Frames <= 0 {
		return 0, errors.Errorf("frames must be positive, got %d", c.Frames)
	}
	algo, ok := vmconst.ParseAlgorithm(c.Algorithm)
	if !ok || !algo.Selectable() {
		return 0, errors.Errorf("algorithm %q is not a user-selectable policy", c.Algorithm)
	}
	return algo, nil
}
