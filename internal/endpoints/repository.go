package endpoints

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	extendpoints "github.com/goliatone/go-external-content/endpoints"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EndpointRepository persists endpoint configurations. List returns rows
// ordered by name; GetDefault only matches active endpoints.
type EndpointRepository interface {
	Create(ctx context.Context, endpoint *extendpoints.Endpoint) (*extendpoints.Endpoint, error)
	GetByID(ctx context.Context, id uuid.UUID) (*extendpoints.Endpoint, error)
	GetDefault(ctx context.Context) (*extendpoints.Endpoint, error)
	List(ctx context.Context) ([]*extendpoints.Endpoint, error)
	ListDefaults(ctx context.Context) ([]*extendpoints.Endpoint, error)
	Update(ctx context.Context, endpoint *extendpoints.Endpoint) (*extendpoints.Endpoint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewEndpointRepository creates a bun-backed repository for Endpoint rows.
func NewEndpointRepository(db *bun.DB) repository.Repository[*extendpoints.Endpoint] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*extendpoints.Endpoint]{
		NewRecord:          func() *extendpoints.Endpoint { return &extendpoints.Endpoint{} },
		GetID:              func(e *extendpoints.Endpoint) uuid.UUID { return e.ID },
		SetID:              func(e *extendpoints.Endpoint, id uuid.UUID) { e.ID = id },
		GetIdentifier:      func() string { return "name" },
		GetIdentifierValue: func(e *extendpoints.Endpoint) string { return e.Name },
	})
}

// BunEndpointRepository implements EndpointRepository with optional caching.
type BunEndpointRepository struct {
	repo repository.Repository[*extendpoints.Endpoint]
}

// NewBunEndpointRepository creates an endpoint repository without caching.
func NewBunEndpointRepository(db *bun.DB) *BunEndpointRepository {
	return NewBunEndpointRepositoryWithCache(db, nil, nil)
}

// NewBunEndpointRepositoryWithCache creates an endpoint repository with caching services.
func NewBunEndpointRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunEndpointRepository {
	base := NewEndpointRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunEndpointRepository{repo: base}
}

func (r *BunEndpointRepository) Create(ctx context.Context, endpoint *extendpoints.Endpoint) (*extendpoints.Endpoint, error) {
	record, err := r.repo.Create(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunEndpointRepository) GetByID(ctx context.Context, id uuid.UUID) (*extendpoints.Endpoint, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "endpoint", id.String())
	}
	return record, nil
}

func (r *BunEndpointRepository) GetDefault(ctx context.Context) (*extendpoints.Endpoint, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.is_default = ?", true).
				Where("?TableAlias.is_active = ?", true)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "endpoint", "default")
	}
	if len(records) == 0 {
		return nil, extendpoints.ErrNoDefault
	}
	return records[0], nil
}

func (r *BunEndpointRepository) List(ctx context.Context) ([]*extendpoints.Endpoint, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("gec.name ASC")
	}))
	return records, err
}

func (r *BunEndpointRepository) ListDefaults(ctx context.Context) ([]*extendpoints.Endpoint, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.is_default = ?", true)
	}))
	return records, err
}

func (r *BunEndpointRepository) Update(ctx context.Context, endpoint *extendpoints.Endpoint) (*extendpoints.Endpoint, error) {
	updated, err := r.repo.Update(ctx, endpoint,
		repository.UpdateByID(endpoint.ID.String()),
		repository.UpdateColumns(
			"name",
			"endpoint_url",
			"single_key",
			"app_key",
			"app_secret",
			"is_default",
			"is_active",
			"modified_at",
			"modified_by",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "endpoint", endpoint.ID.String())
	}
	return updated, nil
}

func (r *BunEndpointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &extendpoints.Endpoint{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &extendpoints.NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}
