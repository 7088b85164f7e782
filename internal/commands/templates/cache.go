package templatescmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-external-content/internal/commands"
	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	"github.com/goliatone/go-external-content/templates"
)

const invalidateTemplateCacheMessageType = "extcontent.templates.cache.invalidate"

var ErrTemplatesModuleDisabled = errors.New("templates command: module disabled")

// FeatureGates exposes the runtime toggle required by template command handlers.
type FeatureGates struct {
	TemplatesEnabled func() bool
}

func (g FeatureGates) templatesEnabled() bool {
	if g.TemplatesEnabled == nil {
		return true
	}
	return g.TemplatesEnabled()
}

// InvalidateTemplateCacheCommand clears cached template lookups to force a reload.
type InvalidateTemplateCacheCommand struct{}

// Type implements command.Message.
func (InvalidateTemplateCacheCommand) Type() string { return invalidateTemplateCacheMessageType }

// Validate satisfies command.Message.
func (InvalidateTemplateCacheCommand) Validate() error {
	return validation.ValidateStruct(&InvalidateTemplateCacheCommand{})
}

// InvalidateTemplateCacheHandler orchestrates template cache invalidation.
type InvalidateTemplateCacheHandler struct {
	inner *commands.Handler[InvalidateTemplateCacheCommand]
}

// NewInvalidateTemplateCacheHandler constructs a handler wired to the provided template service.
func NewInvalidateTemplateCacheHandler(service templates.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InvalidateTemplateCacheCommand]) *InvalidateTemplateCacheHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, _ InvalidateTemplateCacheCommand) error {
		if !gates.templatesEnabled() {
			return ErrTemplatesModuleDisabled
		}
		if err := service.InvalidateCache(ctx); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"operation": "invalidate",
		}).Info("templates.command.cache.invalidated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateTemplateCacheCommand]{
		commands.WithLogger[InvalidateTemplateCacheCommand](baseLogger),
		commands.WithOperation[InvalidateTemplateCacheCommand]("templates.cache.invalidate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateTemplateCacheHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InvalidateTemplateCacheCommand].
func (h *InvalidateTemplateCacheHandler) Execute(ctx context.Context, msg InvalidateTemplateCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
