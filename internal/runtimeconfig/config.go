package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrAdvancedCacheRequiresEnabledCache ensures repository caching builds only when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("extcontent config: advanced cache feature requires cache to be enabled")

var ErrCacheTTLInvalid = errors.New("extcontent config: cache TTLs must be zero or positive")
var ErrGraphTimeoutInvalid = errors.New("extcontent config: graph timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("extcontent config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("extcontent config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("extcontent config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("extcontent config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Storage  StorageConfig
	Cache    CacheConfig
	Graph    GraphConfig
	Features Features
	Commands CommandsConfig
	Logging  LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles. TemplateTTL bounds template
// definition entries; ContentTTL bounds per-item content entries.
type CacheConfig struct {
	Enabled     bool
	TemplateTTL time.Duration
	ContentTTL  time.Duration
}

// GraphConfig captures remote data-source behaviour.
type GraphConfig struct {
	Timeout time.Duration
}

// Features toggles module functionality.
type Features struct {
	AdvancedCache bool
	Logger        bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:     true,
			TemplateTTL: 10 * time.Minute,
			ContentTTL:  5 * time.Minute,
		},
		Graph: GraphConfig{
			Timeout: 30 * time.Second,
		},
		Features: Features{},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if err := validation.ValidateStruct(&cfg.Storage,
		validation.Field(&cfg.Storage.Provider, validation.Required, validation.In("bun", "memory")),
	); err != nil {
		return fmt.Errorf("extcontent config: storage: %w", err)
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Cache.TemplateTTL < 0 || cfg.Cache.ContentTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Graph.Timeout < 0 {
		return ErrGraphTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
