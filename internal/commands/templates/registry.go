package templatescmd

import (
	"errors"

	"github.com/goliatone/go-external-content/internal/commands"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	"github.com/goliatone/go-external-content/templates"
)

// HandlerSet groups the template command handlers produced by RegisterTemplateCommands.
type HandlerSet struct {
	InvalidateCache *InvalidateTemplateCacheHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	invalidateHandlerOpts []commands.HandlerOption[InvalidateTemplateCacheCommand]
}

// WithInvalidateHandlerOptions forwards options to the InvalidateTemplateCacheHandler constructor.
func WithInvalidateHandlerOptions(opts ...commands.HandlerOption[InvalidateTemplateCacheCommand]) Option {
	return func(cfg *options) {
		cfg.invalidateHandlerOpts = append(cfg.invalidateHandlerOpts, opts...)
	}
}

// RegisterTemplateCommands builds template command handlers and registers them
// with the provided registry. The HandlerSet is returned so callers can wire
// additional integrations (dispatcher, cron) as needed.
func RegisterTemplateCommands(reg commands.CommandRegistry, service templates.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("template command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "templates")

	invalidateHandler := NewInvalidateTemplateCacheHandler(service, logger, gates, cfg.invalidateHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(invalidateHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		InvalidateCache: invalidateHandler,
	}, nil
}
