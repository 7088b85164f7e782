package referencescmd_test

import (
	"testing"

	referencescmd "github.com/goliatone/go-external-content/internal/commands/references"
	internalreferences "github.com/goliatone/go-external-content/internal/references"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterReferenceCommands(t *testing.T) {
	reg := &recordingRegistry{}
	refService := internalreferences.NewService(internalreferences.NewMemoryReferenceRepository())

	set, err := referencescmd.RegisterReferenceCommands(reg, refService, &stubContentService{}, nil)
	if err != nil {
		t.Fatalf("register reference commands: %v", err)
	}
	if set == nil || set.RefreshSnapshot == nil {
		t.Fatalf("expected refresh handler, got %#v", set)
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected one handler registered, got %d", len(reg.handlers))
	}
	if reg.handlers[0] != set.RefreshSnapshot {
		t.Fatalf("expected refresh handler registered, got %#v", reg.handlers[0])
	}
}

func TestRegisterReferenceCommandsNilServiceError(t *testing.T) {
	refService := internalreferences.NewService(internalreferences.NewMemoryReferenceRepository())

	if _, err := referencescmd.RegisterReferenceCommands(nil, nil, &stubContentService{}, nil); err == nil {
		t.Fatal("expected error for nil reference service")
	}
	if _, err := referencescmd.RegisterReferenceCommands(nil, refService, nil, nil); err == nil {
		t.Fatal("expected error for nil content service")
	}
}
