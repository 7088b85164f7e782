package references

import (
	"context"

	"github.com/google/uuid"
)

// Service manages persisted references to external content items. Touch
// refreshes a reference's cached snapshot after a successful remote fetch.
type Service interface {
	Create(ctx context.Context, req CreateReferenceRequest) (*Reference, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Reference, error)
	GetByExternalID(ctx context.Context, templateID uuid.UUID, externalID string) (*Reference, error)
	ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*Reference, error)
	Touch(ctx context.Context, id uuid.UUID, snapshot Snapshot) (*Reference, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateReferenceRequest captures the fields required to record a selection.
type CreateReferenceRequest struct {
	ExternalID string
	TemplateID uuid.UUID
	Snapshot   Snapshot
	Author     string
}

// Snapshot carries the cached display fields captured from a fetched item.
// Data holds the item's raw JSON payload.
type Snapshot struct {
	Title        string
	ThumbnailURL string
	Data         string
}
