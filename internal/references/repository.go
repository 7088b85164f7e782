package references

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	extreferences "github.com/goliatone/go-external-content/references"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ReferenceRepository persists external content references.
type ReferenceRepository interface {
	Create(ctx context.Context, reference *extreferences.Reference) (*extreferences.Reference, error)
	GetByID(ctx context.Context, id uuid.UUID) (*extreferences.Reference, error)
	GetByExternalID(ctx context.Context, templateID uuid.UUID, externalID string) (*extreferences.Reference, error)
	ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*extreferences.Reference, error)
	Update(ctx context.Context, reference *extreferences.Reference) (*extreferences.Reference, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewReferenceRepository creates a bun-backed repository for Reference rows.
func NewReferenceRepository(db *bun.DB) repository.Repository[*extreferences.Reference] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*extreferences.Reference]{
		NewRecord:          func() *extreferences.Reference { return &extreferences.Reference{} },
		GetID:              func(r *extreferences.Reference) uuid.UUID { return r.ID },
		SetID:              func(r *extreferences.Reference, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "external_id" },
		GetIdentifierValue: func(r *extreferences.Reference) string { return r.ExternalID },
	})
}

// BunReferenceRepository implements ReferenceRepository with optional caching.
type BunReferenceRepository struct {
	repo repository.Repository[*extreferences.Reference]
}

// NewBunReferenceRepository creates a reference repository without caching.
func NewBunReferenceRepository(db *bun.DB) *BunReferenceRepository {
	return NewBunReferenceRepositoryWithCache(db, nil, nil)
}

// NewBunReferenceRepositoryWithCache creates a reference repository with caching services.
func NewBunReferenceRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunReferenceRepository {
	base := NewReferenceRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunReferenceRepository{repo: base}
}

func (r *BunReferenceRepository) Create(ctx context.Context, reference *extreferences.Reference) (*extreferences.Reference, error) {
	record, err := r.repo.Create(ctx, reference)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunReferenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*extreferences.Reference, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "reference", id.String())
	}
	return record, nil
}

func (r *BunReferenceRepository) GetByExternalID(ctx context.Context, templateID uuid.UUID, externalID string) (*extreferences.Reference, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.template_id = ?", templateID).
				Where("?TableAlias.external_id = ?", externalID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "reference", externalID)
	}
	if len(records) == 0 {
		return nil, &extreferences.NotFoundError{Resource: "reference", Key: externalID}
	}
	return records[0], nil
}

func (r *BunReferenceRepository) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*extreferences.Reference, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.template_id = ?", templateID).
			Order("ecr.created_at DESC")
	}))
	return records, err
}

func (r *BunReferenceRepository) Update(ctx context.Context, reference *extreferences.Reference) (*extreferences.Reference, error) {
	updated, err := r.repo.Update(ctx, reference,
		repository.UpdateByID(reference.ID.String()),
		repository.UpdateColumns(
			"cached_title",
			"cached_thumbnail_url",
			"cached_data",
			"cache_updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "reference", reference.ID.String())
	}
	return updated, nil
}

func (r *BunReferenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &extreferences.Reference{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &extreferences.NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}
