package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ROLEMATCH_CONFIG is set
//  3. env (prefix ROLEMATCH_)
func Load(ctx context.Context) (*Config, error) {
	_ = ctx

	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ROLEMATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROLEMATCH_ADDR, ROLEMATCH_CATALOG_PATH, ...
	// Map env keys like ROLEMATCH_TOP_N -> top_n (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ROLEMATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rolematch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.CatalogPath == "" {
		return nil, fmt.Errorf("%w: catalog_path must not be empty", ErrInvalidConfig)
	}
	if cfg.TopN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
