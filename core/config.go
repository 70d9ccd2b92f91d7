package tyson

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Version is printed in the REPL banner and the core manual.
const Version = "0.0.0.0.7"

// Config holds settings shared by the REPL, the core server and the bridge.
type Config struct {
	Prompt       string `yaml:"prompt"`
	Socket       string `yaml:"socket"`
	Transcript   string `yaml:"transcript"`    // sqlite file; empty disables recording
	MaxTraces    int    `yaml:"max_traces"`    // traces kept in memory by the core
	HistoryLimit int    `yaml:"history_limit"` // transcript rows loaded into line history
}

func DefaultConfig() Config {
	return Config{
		Prompt:       "tyson> ",
		Socket:       "/tmp/tyson.sock",
		MaxTraces:    1000,
		HistoryLimit: 500,
	}
}

// LoadConfig returns the defaults overlaid with the YAML file at path (if
// path is non-empty) and then with TYSON_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TYSON_SOCK"); v != "" {
		c.Socket = v
	}
	if v := os.Getenv("TYSON_TRANSCRIPT"); v != "" {
		c.Transcript = v
	}
	if v := os.Getenv("TYSON_PROMPT"); v != "" {
		c.Prompt = v
	}
	if v := os.Getenv("TYSON_MAX_TRACES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: TYSON_MAX_TRACES: %w", err)
		}
		c.MaxTraces = n
	}
	if v := os.Getenv("TYSON_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: TYSON_HISTORY_LIMIT: %w", err)
		}
		c.HistoryLimit = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Socket == "" {
		return fmt.Errorf("config: socket must not be empty")
	}
	if c.MaxTraces < 0 {
		return fmt.Errorf("config: max_traces must not be negative, got %d", c.MaxTraces)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}
