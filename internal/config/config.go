// Package config loads the retention engine configuration from a YAML file,
// fills defaults and applies RETENTION_* environment overrides.
package config

import (
	"time"

	"retention-engine/internal/rules"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	RefData RefDataConfig `yaml:"reference_data"`
	Rules   RulesConfig   `yaml:"rules"`
}

type ServerConfig struct {
	ListenAddress      string        `yaml:"listen_address"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	MaxRequestBodySize int           `yaml:"max_request_body_size"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is json or text.
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// RefDataConfig points at the reference-data service that publishes the
// remittal result definitions. An empty URL means only the fallback list is used.
type RefDataConfig struct {
	URL                    string        `yaml:"url"`
	Timeout                time.Duration `yaml:"timeout"`
	CacheTTL               time.Duration `yaml:"cache_ttl"`
	FallbackRemitResultIDs []string      `yaml:"fallback_remit_result_ids"`
}

type RulesConfig struct {
	Markers rules.Markers `yaml:"markers"`
}
