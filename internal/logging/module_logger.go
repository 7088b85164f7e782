package logging

import (
	"context"

	"github.com/goliatone/go-external-content/pkg/interfaces"
)

const (
	rootModule      = "extcontent"
	templatesModule = "extcontent.templates"
	contentModule   = "extcontent.content"
	renderingModule = "extcontent.rendering"
	graphModule     = "extcontent.graph"
	endpointsModule = "extcontent.endpoints"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TemplatesLogger returns the logger namespace reserved for template services.
func TemplatesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, templatesModule)
}

// ContentLogger returns the logger namespace reserved for content lookups.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// RenderingLogger returns the logger namespace reserved for template rendering.
func RenderingLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderingModule)
}

// GraphLogger returns the logger namespace reserved for the graph client.
func GraphLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, graphModule)
}

// EndpointsLogger returns the logger namespace reserved for endpoint configuration.
func EndpointsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, endpointsModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
