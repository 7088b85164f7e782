package referencescmd

import (
	"errors"

	"github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/internal/commands"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	"github.com/goliatone/go-external-content/references"
)

// HandlerSet groups the reference command handlers produced by RegisterReferenceCommands.
type HandlerSet struct {
	RefreshSnapshot *RefreshSnapshotHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	refreshHandlerOpts []commands.HandlerOption[RefreshSnapshotCommand]
}

// WithRefreshHandlerOptions forwards options to the RefreshSnapshotHandler constructor.
func WithRefreshHandlerOptions(opts ...commands.HandlerOption[RefreshSnapshotCommand]) Option {
	return func(cfg *options) {
		cfg.refreshHandlerOpts = append(cfg.refreshHandlerOpts, opts...)
	}
}

// RegisterReferenceCommands builds reference command handlers and registers
// them with the provided registry. The HandlerSet is returned so callers can
// wire additional integrations (dispatcher, cron) as needed.
func RegisterReferenceCommands(reg commands.CommandRegistry, refs references.Service, contents content.Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if refs == nil {
		return nil, errors.New("reference command registration: reference service is nil")
	}
	if contents == nil {
		return nil, errors.New("reference command registration: content service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "references")

	refreshHandler := NewRefreshSnapshotHandler(refs, contents, logger, cfg.refreshHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(refreshHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		RefreshSnapshot: refreshHandler,
	}, nil
}
