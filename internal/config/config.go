// Package config loads arbor settings from defaults, a TOML file and the
// environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/arbor/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	// DB overrides the database path. Empty means the XDG default.
	DB string `toml:"db"`

	LLM      llm.Config     `toml:"llm"`
	Server   ServerConfig   `toml:"server"`
	Game     GameConfig     `toml:"game"`
	Practice PracticeConfig `toml:"practice"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// AllowOrigin is sent as Access-Control-Allow-Origin.
	AllowOrigin     string        `toml:"allow_origin"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	// SessionTTL drops idle server-side chat sessions.
	SessionTTL time.Duration `toml:"session_ttl"`
}

// GameConfig bounds the minigame controls.
type GameConfig struct {
	RoundSeconds int     `toml:"round_seconds"`
	MinLength    float64 `toml:"min_length"`
	MaxLength    float64 `toml:"max_length"`
	MinInterval  float64 `toml:"min_interval"`
	MaxInterval  float64 `toml:"max_interval"`
}

// PracticeConfig configures practice sessions.
type PracticeConfig struct {
	BatchSize int `toml:"batch_size"`
	// Seed fixes the question batch; 0 seeds from the clock.
	Seed int64 `toml:"seed"`
	// HistoryLimit is the chat turn count kept before compression.
	HistoryLimit int `toml:"history_limit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Server: ServerConfig{
			Addr:            "127.0.0.1:8000",
			AllowOrigin:     "*",
			ShutdownTimeout: 5 * time.Second,
			SessionTTL:      time.Hour,
		},
		Game: GameConfig{
			RoundSeconds: 30,
			MinLength:    40,
			MaxLength:    200,
			MinInterval:  4,
			MaxInterval:  40,
		},
		Practice: PracticeConfig{
			BatchSize:    5,
			HistoryLimit: 12,
		},
	}
}

// Load reads path over the defaults and then applies the environment.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("decode config %s: unknown key %q", path, keys[0].String())
	}
	return nil
}

// ApplyEnv overlays ARBOR_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)

	if v := os.Getenv("ARBOR_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("ARBOR_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ARBOR_PRACTICE_BATCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Practice.BatchSize = n
		}
	}
	if v := os.Getenv("ARBOR_PRACTICE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Practice.Seed = n
		}
	}
}

// Validate rejects settings the game and practice loops cannot run with.
// LLM settings are checked when a provider is built.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.RoundSeconds <= 0:
		return fmt.Errorf("game.round_seconds must be positive, got %d", g.RoundSeconds)
	case g.MinLength <= 0 || g.MaxLength < g.MinLength:
		return fmt.Errorf("game length range [%g, %g] is invalid", g.MinLength, g.MaxLength)
	case g.MinInterval <= 0 || g.MaxInterval < g.MinInterval:
		return fmt.Errorf("game interval range [%g, %g] is invalid", g.MinInterval, g.MaxInterval)
	case c.Practice.BatchSize <= 0:
		return fmt.Errorf("practice.batch_size must be positive, got %d", c.Practice.BatchSize)
	case c.Practice.HistoryLimit < 2:
		return fmt.Errorf("practice.history_limit must be at least 2, got %d", c.Practice.HistoryLimit)
	}
	return nil
}

// RoundDuration is the minigame round length.
func (g GameConfig) RoundDuration() time.Duration {
	return time.Duration(g.RoundSeconds) * time.Second
}
