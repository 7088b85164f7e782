package di_test

import (
	"context"
	"errors"
	"testing"

	templatescmd "github.com/goliatone/go-external-content/internal/commands/templates"
	"github.com/goliatone/go-external-content/internal/di"
	"github.com/goliatone/go-external-content/internal/runtimeconfig"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterCommandsDisabledByDefault(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	reg := &recordingRegistry{}
	set, err := container.RegisterCommands(reg)
	if err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if set != nil {
		t.Fatalf("expected nil handler set when commands are disabled, got %#v", set)
	}
	if len(reg.handlers) != 0 {
		t.Fatalf("expected no handlers registered, got %d", len(reg.handlers))
	}
}

func TestRegisterCommandsWiresHandlers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	reg := &recordingRegistry{}
	set, err := container.RegisterCommands(reg)
	if err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}
	if set == nil || set.Templates == nil || set.Templates.InvalidateCache == nil {
		t.Fatalf("expected template handlers, got %#v", set)
	}
	if set.References == nil || set.References.RefreshSnapshot == nil {
		t.Fatalf("expected reference handlers, got %#v", set)
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected two handlers registered, got %d", len(reg.handlers))
	}

	// The wired handler operates against the container's template service.
	if err := set.Templates.InvalidateCache.Execute(context.Background(), templatescmd.InvalidateTemplateCacheCommand{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
}

func TestRegisterCommandsRespectsModuleToggle(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Enabled = false
	cfg.Commands.Enabled = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	set, err := container.RegisterCommands(nil)
	if err != nil {
		t.Fatalf("RegisterCommands returned error: %v", err)
	}

	execErr := set.Templates.InvalidateCache.Execute(context.Background(), templatescmd.InvalidateTemplateCacheCommand{})
	if !errors.Is(execErr, templatescmd.ErrTemplatesModuleDisabled) {
		t.Fatalf("expected ErrTemplatesModuleDisabled, got %v", execErr)
	}
}
