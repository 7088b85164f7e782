package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-external-content/internal/runtimeconfig"
)

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Cache.TemplateTTL != 10*time.Minute {
		t.Fatalf("expected 10m template TTL, got %v", cfg.Cache.TemplateTTL)
	}
	if cfg.Cache.ContentTTL != 5*time.Minute {
		t.Fatalf("expected 5m content TTL, got %v", cfg.Cache.ContentTTL)
	}
}

func TestConfigValidate_RejectsUnknownStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "redis"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown storage provider")
	}
}

func TestConfigValidate_AdvancedCacheRequiresCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.AdvancedCache = true
	cfg.Cache.Enabled = false

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected ErrAdvancedCacheRequiresEnabledCache, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeTTL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.ContentTTL = -time.Second

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeGraphTimeout(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Graph.Timeout = -time.Second

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrGraphTimeoutInvalid) {
		t.Fatalf("expected ErrGraphTimeoutInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
