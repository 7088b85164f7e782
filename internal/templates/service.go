package templates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	exttemplates "github.com/goliatone/go-external-content/templates"
	"github.com/google/uuid"
)

// cacheKeyAll holds the whole-collection snapshot. Per-definition entries
// use definitionCacheKey. Both are evicted synchronously on every write.
const cacheKeyAll = "templates:all"

// DefaultDefinitionTTL bounds how long definition lookups are memoized.
const DefaultDefinitionTTL = 10 * time.Minute

func definitionCacheKey(id uuid.UUID) string {
	return "template:" + id.String()
}

// ServiceOption configures the template service.
type ServiceOption func(*service)

// WithClock overrides the time source used for created/modified stamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the id source used for new definitions.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithCacheTTL overrides the definition cache TTL.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger injects the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the template definition service. The cache provider
// may be nil, in which case every read goes to the repository.
func NewService(repo DefinitionRepository, cache interfaces.CacheProvider, opts ...ServiceOption) exttemplates.Service {
	s := &service{
		repo:   repo,
		cache:  cache,
		logger: logging.NoOp(),
		now:    time.Now,
		id:     uuid.New,
		ttl:    DefaultDefinitionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type service struct {
	repo   DefinitionRepository
	cache  interfaces.CacheProvider
	logger interfaces.Logger
	now    func() time.Time
	id     func() uuid.UUID
	ttl    time.Duration
}

func (s *service) List(ctx context.Context) ([]*exttemplates.Definition, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyAll, cloneDefinitions(records), s.ttl); err != nil {
			s.logger.Warn("templates.cache.set_failed", "key", cacheKeyAll, "error", err)
		}
	}
	return records, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*exttemplates.Definition, error) {
	if id == uuid.Nil {
		return nil, exttemplates.ErrDefinitionIDRequired
	}

	key := definitionCacheKey(id)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			if record, ok := cached.(*exttemplates.Definition); ok {
				return record.Clone(), nil
			}
		}
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, record.Clone(), s.ttl); err != nil {
			s.logger.Warn("templates.cache.set_failed", "key", key, "error", err)
		}
	}
	return record, nil
}

func (s *service) GetByContentType(ctx context.Context, contentTypeName string) (*exttemplates.Definition, error) {
	name := strings.TrimSpace(contentTypeName)
	if name == "" {
		return nil, exttemplates.ErrContentTypeNameRequired
	}
	return s.repo.GetByContentType(ctx, name)
}

func (s *service) Create(ctx context.Context, req exttemplates.CreateDefinitionRequest) (*exttemplates.Definition, error) {
	if err := validateDefinitionFields(req.ContentTypeName, req.DisplayName, req.EditModeTemplate, req.RenderTemplate, req.Query); err != nil {
		return nil, err
	}
	if err := s.ensureContentTypeAvailable(ctx, req.ContentTypeName, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	definition := &exttemplates.Definition{
		ID:                 s.id(),
		ContentTypeName:    strings.TrimSpace(req.ContentTypeName),
		DisplayName:        strings.TrimSpace(req.DisplayName),
		Description:        req.Description,
		EditModeTemplate:   req.EditModeTemplate,
		RenderTemplate:     req.RenderTemplate,
		Query:              req.Query,
		QueryVariables:     req.QueryVariables,
		IconClass:          req.IconClass,
		TitleFieldName:     req.TitleFieldName,
		ThumbnailFieldName: req.ThumbnailFieldName,
		IsActive:           req.IsActive,
		SortOrder:          req.SortOrder,
		CreatedAt:          now,
	}
	if author := strings.TrimSpace(req.Author); author != "" {
		definition.CreatedBy = &author
	}

	created, err := s.repo.Create(ctx, definition)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, created.ID)
	return created, nil
}

func (s *service) Update(ctx context.Context, req exttemplates.UpdateDefinitionRequest) (*exttemplates.Definition, error) {
	if req.ID == uuid.Nil {
		return nil, exttemplates.ErrDefinitionIDRequired
	}
	if err := validateDefinitionFields(req.ContentTypeName, req.DisplayName, req.EditModeTemplate, req.RenderTemplate, req.Query); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureContentTypeAvailable(ctx, req.ContentTypeName, req.ID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	existing.ContentTypeName = strings.TrimSpace(req.ContentTypeName)
	existing.DisplayName = strings.TrimSpace(req.DisplayName)
	existing.Description = req.Description
	existing.EditModeTemplate = req.EditModeTemplate
	existing.RenderTemplate = req.RenderTemplate
	existing.Query = req.Query
	existing.QueryVariables = req.QueryVariables
	existing.IconClass = req.IconClass
	existing.TitleFieldName = req.TitleFieldName
	existing.ThumbnailFieldName = req.ThumbnailFieldName
	existing.IsActive = req.IsActive
	existing.SortOrder = req.SortOrder
	existing.ModifiedAt = &now
	if editor := strings.TrimSpace(req.Editor); editor != "" {
		existing.ModifiedBy = &editor
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, updated.ID)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return exttemplates.ErrDefinitionIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cacheKeyAll)
}

func (s *service) cachedList(ctx context.Context) ([]*exttemplates.Definition, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, cacheKeyAll)
	if err != nil {
		return nil, false
	}
	records, ok := cached.([]*exttemplates.Definition)
	if !ok {
		return nil, false
	}
	// Hand out clones so callers cannot mutate the cached snapshot.
	return cloneDefinitions(records), true
}

func cloneDefinitions(records []*exttemplates.Definition) []*exttemplates.Definition {
	cloned := make([]*exttemplates.Definition, len(records))
	for i, record := range records {
		cloned[i] = record.Clone()
	}
	return cloned
}

// invalidate evicts the collection snapshot and the written definition's own
// entry. It runs before the write returns to its caller.
func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyAll); err != nil {
		s.logger.Warn("templates.cache.evict_failed", "key", cacheKeyAll, "error", err)
	}
	key := definitionCacheKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("templates.cache.evict_failed", "key", key, "error", err)
	}
}

func (s *service) ensureContentTypeAvailable(ctx context.Context, contentTypeName string, selfID uuid.UUID) error {
	existing, err := s.repo.GetByContentType(ctx, strings.TrimSpace(contentTypeName))
	if err != nil {
		if errors.Is(err, exttemplates.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return exttemplates.ErrContentTypeNameExists
	}
	return nil
}

func validateDefinitionFields(contentTypeName, displayName, editModeTemplate, renderTemplate, query string) error {
	if strings.TrimSpace(contentTypeName) == "" {
		return exttemplates.ErrContentTypeNameRequired
	}
	if strings.TrimSpace(displayName) == "" {
		return exttemplates.ErrDisplayNameRequired
	}
	if strings.TrimSpace(editModeTemplate) == "" {
		return exttemplates.ErrEditModeTemplateRequired
	}
	if strings.TrimSpace(renderTemplate) == "" {
		return exttemplates.ErrRenderTemplateRequired
	}
	if strings.TrimSpace(query) == "" {
		return exttemplates.ErrQueryRequired
	}
	return nil
}
