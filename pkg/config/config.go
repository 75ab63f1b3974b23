// Package config loads anisearch settings from built-in defaults, an optional
// YAML file and ANISEARCH_* environment variables, in that order of priority.
//
// Environment keys use a double underscore between section and field:
//
//	ANISEARCH_DATASET__PATH=./anime-offline-database.zip
//	ANISEARCH_SEARCH__PAGE_SIZE=50
//	ANISEARCH_LOG__LEVEL=debug
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/kerbaras/anisearch/pkg/validation"
)

const (
	// EnvPrefix is stripped from environment variable names.
	EnvPrefix = "ANISEARCH_"
	// PathEnvVar overrides the config file location.
	PathEnvVar = "ANISEARCH_CONFIG"
)

// DefaultPaths are tried in order when no explicit path is given.
var DefaultPaths = []string{
	"anisearch.yaml",
	"anisearch.yml",
}

type Config struct {
	Dataset DatasetConfig `koanf:"dataset"`
	Catalog CatalogConfig `koanf:"catalog"`
	Search  SearchConfig  `koanf:"search"`
	Log     LogConfig     `koanf:"log"`
}

type DatasetConfig struct {
	Path   string `koanf:"path" validate:"required"`
	Format string `koanf:"format" validate:"oneof=auto json zip duckdb"`
	Table  string `koanf:"table" validate:"required"`
}

// CatalogConfig points at replacements for the bundled alias table and
// exclusion list. Empty paths keep the bundled documents.
type CatalogConfig struct {
	Aliases    string `koanf:"aliases"`
	Exclusions string `koanf:"exclusions"`
}

type SearchConfig struct {
	PageSize          int `koanf:"page_size" validate:"gte=1,lte=500"`
	Workers           int `koanf:"workers" validate:"gte=1"`
	ParallelThreshold int `koanf:"parallel_threshold" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// Default returns the configuration used when nothing overrides it. The
// dataset path has no default.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Format: "auto",
			Table:  "entries",
		},
		Search: SearchConfig{
			PageSize:          20,
			Workers:           runtime.GOMAXPROCS(0),
			ParallelThreshold: 4096,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// ANISEARCH_CONFIG and then DefaultPaths are consulted; a missing default file
// is not an error but a missing explicit one is.
//
// Load does not validate: commands that do not need a dataset still work
// without one. Call Validate before using the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field against its rules.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKey maps ANISEARCH_SEARCH__PAGE_SIZE to search.page_size. The config
// path variable itself is not a setting and maps to an unused key.
func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}
