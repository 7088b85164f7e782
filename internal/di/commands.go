package di

import (
	"github.com/goliatone/go-external-content/internal/commands"
	referencescmd "github.com/goliatone/go-external-content/internal/commands/references"
	templatescmd "github.com/goliatone/go-external-content/internal/commands/templates"
)

// CommandHandlers groups the command handlers wired from container services.
type CommandHandlers struct {
	Templates  *templatescmd.HandlerSet
	References *referencescmd.HandlerSet
}

// RegisterCommands builds the module's command handlers from container
// services and registers them with reg. When Commands.Enabled is false no
// handlers are built and a nil set is returned.
func (c *Container) RegisterCommands(reg commands.CommandRegistry) (*CommandHandlers, error) {
	if !c.Config.Commands.Enabled {
		return nil, nil
	}

	gates := templatescmd.FeatureGates{
		TemplatesEnabled: func() bool { return c.Config.Enabled },
	}

	templateSet, err := templatescmd.RegisterTemplateCommands(reg, c.TemplateService(), c.loggerProvider, gates)
	if err != nil {
		return nil, err
	}

	referenceSet, err := referencescmd.RegisterReferenceCommands(reg, c.ReferenceService(), c.ContentService(), c.loggerProvider)
	if err != nil {
		return nil, err
	}

	return &CommandHandlers{
		Templates:  templateSet,
		References: referenceSet,
	}, nil
}
