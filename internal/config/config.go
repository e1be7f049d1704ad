// Package config provides application configuration management.
//
// This package handles all configuration-related functionality including:
//   - Default configuration values
//   - Optional YAML config file loading
//   - Index directory resolution with fallbacks
//   - Configuration validation
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/patseek/patseek/internal/constants"
)

// Config holds application configuration settings.
type Config struct {
	// CorpusDir is the root directory of the JSON document corpus.
	CorpusDir string `yaml:"corpus_dir"`

	// IndexDir is the directory holding the three index artifacts.
	IndexDir string `yaml:"index_dir"`

	// DocTableFile, TermDictFile and PostingsFile name the artifacts inside
	// IndexDir.
	DocTableFile string `yaml:"doc_table_file"`
	TermDictFile string `yaml:"term_dict_file"`
	PostingsFile string `yaml:"postings_file"`

	// TopK is the number of results printed per query.
	TopK int `yaml:"top_k"`

	// ServerAddr is the listen address for the HTTP API.
	ServerAddr string `yaml:"server_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, enables the rotating file sink.
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		CorpusDir:    "corpus",
		IndexDir:     "index",
		DocTableFile: constants.DocTableFile,
		TermDictFile: constants.TermDictFile,
		PostingsFile: constants.PostingsFile,
		TopK:         constants.DefaultTopK,
		ServerAddr:   ":8080",
		LogLevel:     "info",
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks if the configuration contains valid values.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.TopK > 100 {
		return fmt.Errorf("top_k too large, got %d (max: 100)", c.TopK)
	}
	if c.IndexDir == "" {
		return fmt.Errorf("index_dir cannot be empty")
	}
	if c.DocTableFile == "" || c.TermDictFile == "" || c.PostingsFile == "" {
		return fmt.Errorf("artifact file names cannot be empty")
	}
	return nil
}

// DocTablePath returns the full path of the doc table artifact.
func (c *Config) DocTablePath() string {
	return filepath.Join(c.IndexDir, c.DocTableFile)
}

// TermDictPath returns the full path of the term dictionary artifact.
func (c *Config) TermDictPath() string {
	return filepath.Join(c.IndexDir, c.TermDictFile)
}

// PostingsPath returns the full path of the postings artifact.
func (c *Config) PostingsPath() string {
	return filepath.Join(c.IndexDir, c.PostingsFile)
}

// ResolveIndexDir returns the first directory that actually contains a doc
// table, trying the configured directory first and then common locations.
func (c *Config) ResolveIndexDir() string {
	candidates := []string{
		c.IndexDir,
		"index",
		filepath.Join(".", "index"),
	}
	for _, dir := range candidates {
		if _, err := os.Stat(filepath.Join(dir, c.DocTableFile)); err == nil {
			return dir
		}
	}
	return c.IndexDir
}
