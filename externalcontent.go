package externalcontent

import (
	"github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/endpoints"
	"github.com/goliatone/go-external-content/internal/commands"
	"github.com/goliatone/go-external-content/internal/di"
	"github.com/goliatone/go-external-content/references"
	"github.com/goliatone/go-external-content/rendering"
	"github.com/goliatone/go-external-content/templates"
)

// TemplateService exports the template definition contract for consumers of
// the externalcontent package.
type TemplateService = templates.Service

// EndpointService exports the graph endpoint configuration contract.
type EndpointService = endpoints.Service

// ReferenceService exports the content reference tracking contract.
type ReferenceService = references.Service

// ContentService exports the remote content lookup contract.
type ContentService = content.Service

// RenderingService exports the template rendering contract.
type RenderingService = rendering.Service

// Module represents the top level external content runtime façade.
type Module struct {
	container *di.Container
}

// New constructs the module using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Templates returns the configured template definition service.
func (m *Module) Templates() TemplateService {
	return m.container.TemplateService()
}

// Endpoints returns the configured endpoint configuration service.
func (m *Module) Endpoints() EndpointService {
	return m.container.EndpointService()
}

// References returns the configured reference tracking service.
func (m *Module) References() ReferenceService {
	return m.container.ReferenceService()
}

// Content returns the configured remote content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Rendering returns the configured rendering service.
func (m *Module) Rendering() RenderingService {
	return m.container.RenderingService()
}

// CommandRegistry exports the registration contract for command handlers.
type CommandRegistry = commands.CommandRegistry

// CommandHandlers exports the wired command handler sets.
type CommandHandlers = di.CommandHandlers

// RegisterCommands wires the module's command handlers into reg. It is a
// no-op returning a nil set unless Commands.Enabled is set.
func (m *Module) RegisterCommands(reg CommandRegistry) (*CommandHandlers, error) {
	return m.container.RegisterCommands(reg)
}
