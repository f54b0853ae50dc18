package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (DefaultConfig)
//  2. file (YAML) if WIFR_CONFIG is set
//  3. env (prefix WIFR_)
func Load() (*Config, error) {
	base := DefaultConfig()

	k := koanf.New(".")

	if path := os.Getenv("WIFR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: WIFR_DEFAULT_RATING, WIFR_TRAINING_OUTPUT, ...
	// Keys map to the koanf tags on the struct, underscores preserved.
	envProvider := env.Provider("WIFR_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "wifr_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
