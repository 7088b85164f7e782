package templates

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	exttemplates "github.com/goliatone/go-external-content/templates"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefinitionRepository persists template definitions. List returns rows
// ordered by (sort_order, display_name); GetByContentType only matches
// active definitions.
type DefinitionRepository interface {
	Create(ctx context.Context, definition *exttemplates.Definition) (*exttemplates.Definition, error)
	GetByID(ctx context.Context, id uuid.UUID) (*exttemplates.Definition, error)
	GetByContentType(ctx context.Context, contentTypeName string) (*exttemplates.Definition, error)
	List(ctx context.Context) ([]*exttemplates.Definition, error)
	Update(ctx context.Context, definition *exttemplates.Definition) (*exttemplates.Definition, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewDefinitionRepository creates a bun-backed repository for Definition rows.
func NewDefinitionRepository(db *bun.DB) repository.Repository[*exttemplates.Definition] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*exttemplates.Definition]{
		NewRecord:          func() *exttemplates.Definition { return &exttemplates.Definition{} },
		GetID:              func(d *exttemplates.Definition) uuid.UUID { return d.ID },
		SetID:              func(d *exttemplates.Definition, id uuid.UUID) { d.ID = id },
		GetIdentifier:      func() string { return "content_type_name" },
		GetIdentifierValue: func(d *exttemplates.Definition) string { return d.ContentTypeName },
	})
}

// BunDefinitionRepository implements DefinitionRepository with optional caching.
type BunDefinitionRepository struct {
	repo repository.Repository[*exttemplates.Definition]
}

// NewBunDefinitionRepository creates a definition repository without caching.
func NewBunDefinitionRepository(db *bun.DB) *BunDefinitionRepository {
	return NewBunDefinitionRepositoryWithCache(db, nil, nil)
}

// NewBunDefinitionRepositoryWithCache creates a definition repository with caching services.
func NewBunDefinitionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunDefinitionRepository {
	base := NewDefinitionRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunDefinitionRepository{repo: base}
}

func (r *BunDefinitionRepository) Create(ctx context.Context, definition *exttemplates.Definition) (*exttemplates.Definition, error) {
	record, err := r.repo.Create(ctx, definition)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunDefinitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*exttemplates.Definition, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "template", id.String())
	}
	return record, nil
}

func (r *BunDefinitionRepository) GetByContentType(ctx context.Context, contentTypeName string) (*exttemplates.Definition, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.content_type_name = ?", contentTypeName).
				Where("?TableAlias.is_active = ?", true)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "template", contentTypeName)
	}
	if len(records) == 0 {
		return nil, &exttemplates.NotFoundError{Resource: "template", Key: contentTypeName}
	}
	return records[0], nil
}

func (r *BunDefinitionRepository) List(ctx context.Context) ([]*exttemplates.Definition, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("ect.sort_order ASC", "ect.display_name ASC")
	}))
	return records, err
}

func (r *BunDefinitionRepository) Update(ctx context.Context, definition *exttemplates.Definition) (*exttemplates.Definition, error) {
	updated, err := r.repo.Update(ctx, definition,
		repository.UpdateByID(definition.ID.String()),
		repository.UpdateColumns(
			"content_type_name",
			"display_name",
			"description",
			"edit_mode_template",
			"render_template",
			"query",
			"query_variables",
			"icon_class",
			"title_field_name",
			"thumbnail_field_name",
			"is_active",
			"sort_order",
			"modified_at",
			"modified_by",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "template", definition.ID.String())
	}
	return updated, nil
}

func (r *BunDefinitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &exttemplates.Definition{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &exttemplates.NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}
