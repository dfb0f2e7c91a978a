package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalid = errors.New("invalid configuration")

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "text": true}
)

// Validate checks the configuration and reports every problem found at once.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Server.ListenAddress == "" {
		problems = append(problems, "server.listen_address must not be empty")
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}
	if cfg.Server.MaxRequestBodySize < 0 {
		problems = append(problems, "server.max_request_body_size must not be negative")
	}

	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		problems = append(problems, fmt.Sprintf("logging.level %q must be one of debug, info, warn, error", cfg.Logging.Level))
	}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		problems = append(problems, fmt.Sprintf("logging.format %q must be json or text", cfg.Logging.Format))
	}

	if cfg.RefData.URL != "" {
		u, err := url.Parse(cfg.RefData.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("reference_data.url %q must be an absolute URL", cfg.RefData.URL))
		}
	}
	if cfg.RefData.Timeout < 0 || cfg.RefData.CacheTTL < 0 {
		problems = append(problems, "reference_data timeouts must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
