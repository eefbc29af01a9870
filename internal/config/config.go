// Package config loads engine configuration from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/memo"
)

// Config is the process-wide engine configuration.
// Command-line flags override these values.
type Config struct {
	// MaxDepth bounds recursion depth per evaluation; 0 disables the bound.
	MaxDepth int `env:"TALLY_MAX_DEPTH" envDefault:"100000"`

	// Memo enables the in-process result cache.
	Memo bool `env:"TALLY_MEMO" envDefault:"true"`

	// MemoTTL is how long cached results live.
	MemoTTL time.Duration `env:"TALLY_MEMO_TTL" envDefault:"10m"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"TALLY_LOG_LEVEL" envDefault:"warn"`

	// StrictExponent rejects negative exponents instead of returning 0.
	StrictExponent bool `env:"TALLY_STRICT_EXPONENT" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("TALLY_MAX_DEPTH must be >= 0, got %d", c.MaxDepth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("TALLY_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// EngineOptions translates the configuration into engine options.
func (c Config) EngineOptions(logger *slog.Logger) []engine.EngineOption {
	opts := []engine.EngineOption{
		engine.WithLogger(logger),
		engine.WithMaxDepth(c.MaxDepth),
	}
	if c.StrictExponent {
		opts = append(opts, engine.WithStrictExponent())
	}
	if c.Memo {
		opts = append(opts, engine.WithMemo(memo.New(memo.Config{TTL: c.MemoTTL})))
	}
	return opts
}
