package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/seedchain/pkg/corpus"
	"github.com/CTAG07/seedchain/pkg/source"
	"github.com/natefinch/atomic"
)

const (
	tokenizerWords = "words"
	tokenizerRunes = "runes"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	DatabasePath string  `json:"database_path"`
	LogLevel     string  `json:"log_level"`
	Source       string  `json:"source"`
	Seed         *uint64 `json:"seed,omitempty"` // nil seeds from the clock
	Tokenizer    string  `json:"tokenizer"`
	Count        int     `json:"count"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath: "./seedchain.db",
		LogLevel:     "info",
		Source:       source.NameXorshift,
		Tokenizer:    tokenizerWords,
		Count:        1,
	}
}

// LoadConfig reads the configuration from a JSON file at path. If the file
// doesn't exist, it creates one with default values. The result is not
// validated, since command-line flags may still override it.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is empty")
	}
	if _, err := source.New(c.Source, 0); err != nil {
		return err
	}
	if _, err := newTokenizer(c.Tokenizer); err != nil {
		return err
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", c.Count)
	}
	return nil
}

// parseLogLevel maps a level name to a slog level. Unknown names map to info.
func parseLogLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newTokenizer(name string) (corpus.Tokenizer, error) {
	switch name {
	case tokenizerWords:
		return corpus.NewDefaultTokenizer(), nil
	case tokenizerRunes:
		return corpus.NewRuneTokenizer(), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q (want %s or %s)", name, tokenizerWords, tokenizerRunes)
	}
}
