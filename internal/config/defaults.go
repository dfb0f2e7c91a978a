package config

import "time"

const (
	DefaultListenAddress      = ":8080"
	DefaultReadTimeout        = 5 * time.Second
	DefaultWriteTimeout       = 5 * time.Second
	DefaultMaxRequestBodySize = 4 << 20
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsNamespace   = "retention_engine"
	DefaultRefDataTimeout     = 2 * time.Second
	DefaultRefDataCacheTTL    = 15 * time.Minute
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields. Booleans are left alone since false
// cannot be told apart from unset.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.MaxRequestBodySize == 0 {
		cfg.Server.MaxRequestBodySize = DefaultMaxRequestBodySize
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.RefData.Timeout == 0 {
		cfg.RefData.Timeout = DefaultRefDataTimeout
	}
	if cfg.RefData.CacheTTL == 0 {
		cfg.RefData.CacheTTL = DefaultRefDataCacheTTL
	}

	cfg.Rules.Markers = cfg.Rules.Markers.WithDefaults()
}
