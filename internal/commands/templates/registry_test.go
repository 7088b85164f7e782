package templatescmd_test

import (
	"testing"

	"github.com/goliatone/go-external-content/internal/commands"
	templatescmd "github.com/goliatone/go-external-content/internal/commands/templates"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterTemplateCommands(t *testing.T) {
	reg := &recordingRegistry{}

	set, err := templatescmd.RegisterTemplateCommands(reg, &stubService{}, nil, templatescmd.FeatureGates{})
	if err != nil {
		t.Fatalf("register template commands: %v", err)
	}
	if set == nil || set.InvalidateCache == nil {
		t.Fatalf("expected invalidate handler, got %#v", set)
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected one handler registered, got %d", len(reg.handlers))
	}
	if reg.handlers[0] != set.InvalidateCache {
		t.Fatalf("expected invalidate handler registered, got %#v", reg.handlers[0])
	}
}

func TestRegisterTemplateCommandsHandlerOptionsApplied(t *testing.T) {
	applied := false

	_, err := templatescmd.RegisterTemplateCommands(nil, &stubService{}, nil, templatescmd.FeatureGates{},
		templatescmd.WithInvalidateHandlerOptions(func(h *commands.Handler[templatescmd.InvalidateTemplateCacheCommand]) {
			applied = true
		}),
	)
	if err != nil {
		t.Fatalf("register template commands: %v", err)
	}
	if !applied {
		t.Fatal("expected invalidate handler options applied")
	}
}

func TestRegisterTemplateCommandsNilRegistrySkipsRegistration(t *testing.T) {
	set, err := templatescmd.RegisterTemplateCommands(nil, &stubService{}, nil, templatescmd.FeatureGates{})
	if err != nil {
		t.Fatalf("register template commands: %v", err)
	}
	if set == nil || set.InvalidateCache == nil {
		t.Fatalf("expected handlers built when registry nil, got %#v", set)
	}
}

func TestRegisterTemplateCommandsNilServiceError(t *testing.T) {
	if _, err := templatescmd.RegisterTemplateCommands(nil, nil, nil, templatescmd.FeatureGates{}); err == nil {
		t.Fatal("expected error for nil service")
	}
}
