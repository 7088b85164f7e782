package rendering

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	extcontent "github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/graph"
	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/mustache"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	extrendering "github.com/goliatone/go-external-content/rendering"
	exttemplates "github.com/goliatone/go-external-content/templates"
	"github.com/google/uuid"
)

// ServiceOption configures the rendering service.
type ServiceOption func(*service)

// WithLogger injects the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the template rendering service.
func NewService(templates exttemplates.Service, opts ...ServiceOption) extrendering.Service {
	s := &service{
		templates: templates,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type service struct {
	templates exttemplates.Service
	logger    interfaces.Logger
}

// RenderEditMode renders the editor-facing template. A missing template
// produces a visible placeholder so editors see what is broken.
func (s *service) RenderEditMode(ctx context.Context, templateID uuid.UUID, item *extcontent.Item) string {
	definition, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return fmt.Sprintf(`<div class="epi-error">Template not found: %s</div>`, templateID)
	}
	return s.render(definition.EditModeTemplate, item)
}

// RenderPublic renders the public-facing template. A missing template
// degrades to empty output so end users never see broken markup.
func (s *service) RenderPublic(ctx context.Context, templateID uuid.UUID, item *extcontent.Item) string {
	definition, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return ""
	}
	return s.render(definition.RenderTemplate, item)
}

// Validate checks a template against a fixed synthetic binding. Engine
// errors invalidate the template; unbalanced tag counts only warn, as the
// heuristic cannot tell unmatched tags from literal braces.
func (s *service) Validate(template string) extrendering.ValidationResult {
	result := extrendering.ValidationResult{IsValid: true}

	if strings.TrimSpace(template) == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, "Template cannot be empty.")
		return result
	}

	binding := map[string]graph.Value{
		"test":  graph.String("value"),
		"items": graph.List(nil),
	}
	if _, err := mustache.Render(template, binding); err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Template parsing error: %v", err))
		return result
	}

	openTags := strings.Count(template, "{{")
	closeTags := strings.Count(template, "}}")
	if openTags != closeTags {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unmatched mustache tags: %d opening, %d closing.", openTags, closeTags))
	}

	sectionStarts := strings.Count(template, "{{#")
	sectionEnds := strings.Count(template, "{{/")
	if sectionStarts != sectionEnds {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unmatched section tags: %d opening, %d closing.", sectionStarts, sectionEnds))
	}

	return result
}

// Preview renders a template against caller-supplied sample JSON. Malformed
// input becomes an inline error fragment.
func (s *service) Preview(template string, sampleDataJSON string) string {
	var raw map[string]any
	if err := json.Unmarshal([]byte(sampleDataJSON), &raw); err != nil {
		return fmt.Sprintf(`<div class="epi-error">JSON parsing error: %v</div>`, err)
	}
	if raw == nil {
		return `<div class="epi-error">Invalid sample data JSON.</div>`
	}

	output, err := mustache.Render(template, graph.ConvertMap(raw))
	if err != nil {
		return fmt.Sprintf(`<div class="epi-error">Rendering error: %v</div>`, err)
	}
	return output
}

// render merges the standard injected fields over the item payload and runs
// the engine. Engine failures are logged and shown inline.
func (s *service) render(template string, item *extcontent.Item) string {
	data := make(map[string]graph.Value, len(item.Data)+4)
	for key, value := range item.Data {
		data[key] = value
	}
	data["_id"] = graph.String(item.ID)
	data["_title"] = graph.String(item.Title)
	data["_thumbnail"] = graph.String(item.ThumbnailURL)
	data["_contentType"] = graph.String(item.ContentType)

	output, err := mustache.Render(template, data)
	if err != nil {
		s.logger.Error("rendering.failed", "content_id", item.ID, "error", err)
		return fmt.Sprintf(`<div class="epi-error">Rendering error: %v</div>`, err)
	}
	return output
}
