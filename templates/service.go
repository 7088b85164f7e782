package templates

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes template definition management. List and GetByID read
// through the definition caches; every write synchronously evicts the
// collection snapshot and the written definition's own cache entry before
// returning, so a read after a write never observes stale data within one
// process.
type Service interface {
	List(ctx context.Context) ([]*Definition, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Definition, error)
	GetByContentType(ctx context.Context, contentTypeName string) (*Definition, error)
	Create(ctx context.Context, req CreateDefinitionRequest) (*Definition, error)
	Update(ctx context.Context, req UpdateDefinitionRequest) (*Definition, error)
	Delete(ctx context.Context, id uuid.UUID) error
	InvalidateCache(ctx context.Context) error
}

// CreateDefinitionRequest captures the fields required to register a template.
type CreateDefinitionRequest struct {
	ContentTypeName    string
	DisplayName        string
	Description        *string
	EditModeTemplate   string
	RenderTemplate     string
	Query              string
	QueryVariables     *string
	IconClass          string
	TitleFieldName     *string
	ThumbnailFieldName *string
	IsActive           bool
	SortOrder          int
	Author             string
}

// UpdateDefinitionRequest captures mutable fields for an existing template.
type UpdateDefinitionRequest struct {
	ID                 uuid.UUID
	ContentTypeName    string
	DisplayName        string
	Description        *string
	EditModeTemplate   string
	RenderTemplate     string
	Query              string
	QueryVariables     *string
	IconClass          string
	TitleFieldName     *string
	ThumbnailFieldName *string
	IsActive           bool
	SortOrder          int
	Editor             string
}
