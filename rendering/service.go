// Package rendering exposes template rendering for external content. Every
// operation returns markup; failures become inline error fragments or empty
// output instead of propagating, so one broken template never takes down
// sibling blocks on a page.
package rendering

import (
	"context"

	"github.com/goliatone/go-external-content/content"
	"github.com/google/uuid"
)

// Service renders external content through configured templates.
// RenderEditMode returns a visible placeholder fragment when the template is
// missing; RenderPublic degrades to an empty string instead.
type Service interface {
	RenderEditMode(ctx context.Context, templateID uuid.UUID, item *content.Item) string
	RenderPublic(ctx context.Context, templateID uuid.UUID, item *content.Item) string
	Validate(template string) ValidationResult
	Preview(template string, sampleDataJSON string) string
}

// ValidationResult reports template validation findings. Errors mark the
// template unusable; warnings flag suspicious but renderable constructs.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
