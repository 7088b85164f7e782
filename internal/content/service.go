package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	extcontent "github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/graph"
	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	exttemplates "github.com/goliatone/go-external-content/templates"
	"github.com/google/uuid"
)

// DefaultContentTTL bounds how long individual item lookups are memoized.
const DefaultContentTTL = 5 * time.Minute

// DefaultPageSize applies when a search request does not set one.
const DefaultPageSize = 20

func itemCacheKey(templateID uuid.UUID, externalID string) string {
	return fmt.Sprintf("external-content:%s:%s", templateID, externalID)
}

// ServiceOption configures the content service.
type ServiceOption func(*service)

// WithCacheTTL overrides the item cache TTL.
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

// NewService constructs the content orchestration service. The cache
// provider may be nil, in which case every lookup goes to the remote source.
func NewService(templates exttemplates.Service, client graph.Client, cache interfaces.CacheProvider, opts ...ServiceOption) extcontent.Service {
	s := &service{
		templates: templates,
		client:    client,
		cache:     cache,
		logger:    logging.NoOp(),
		ttl:       DefaultContentTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type service struct {
	templates exttemplates.Service
	client    graph.Client
	cache     interfaces.CacheProvider
	logger    interfaces.Logger
	ttl       time.Duration
}

// Search runs one page of the template's query against the remote source.
// A missing or inactive template, and any remote failure, degrade to an
// empty page rather than an error.
func (s *service) Search(ctx context.Context, req extcontent.SearchRequest) (*extcontent.SearchResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	response := &extcontent.SearchResponse{
		Items:    []*extcontent.Item{},
		Page:     page,
		PageSize: pageSize,
	}

	if req.TemplateID == uuid.Nil {
		return nil, extcontent.ErrTemplateIDRequired
	}

	definition, err := s.activeDefinition(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, exttemplates.ErrNotFound) {
			s.logger.Warn("content.search.template_missing", "template_id", req.TemplateID)
			return response, nil
		}
		return nil, err
	}
	if definition == nil {
		s.logger.Warn("content.search.template_inactive", "template_id", req.TemplateID)
		return response, nil
	}

	variables, err := baseVariables(definition)
	if err != nil {
		s.logger.Error("content.search.variables_invalid", "template_id", req.TemplateID, "error", err)
		return response, nil
	}
	if query := strings.TrimSpace(req.Query); query != "" {
		variables["searchText"] = query
	}
	variables["skip"] = (page - 1) * pageSize
	variables["limit"] = pageSize
	if locale := strings.TrimSpace(req.Locale); locale != "" {
		variables["locale"] = locale
	}

	result, err := s.client.Execute(ctx, definition.Query, variables)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("content.search.remote_failed", "template_id", req.TemplateID, "error", err)
		return response, nil
	}

	response.Items = parseItems(result, definition)
	response.TotalCount = extractTotal(result, len(response.Items))
	return response, nil
}

// GetByID fetches a single item by running the template's query with the
// item id as the only variable and filtering the parsed results. Hits are
// memoized per (template, item) pair.
func (s *service) GetByID(ctx context.Context, templateID uuid.UUID, externalID string) (*extcontent.Item, error) {
	if templateID == uuid.Nil {
		return nil, extcontent.ErrTemplateIDRequired
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, extcontent.ErrExternalIDRequired
	}

	key := itemCacheKey(templateID, externalID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			if item, ok := cached.(*extcontent.Item); ok {
				return item, nil
			}
		}
	}

	definition, err := s.activeDefinition(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if definition == nil {
		return nil, &extcontent.NotFoundError{Resource: "template", Key: templateID.String()}
	}

	result, err := s.client.Execute(ctx, definition.Query, map[string]any{"id": externalID})
	if err != nil {
		return nil, err
	}

	for _, item := range parseItems(result, definition) {
		if item.ID != externalID {
			continue
		}
		if s.cache != nil && ctx.Err() == nil {
			if err := s.cache.Set(ctx, key, item, s.ttl); err != nil {
				s.logger.Warn("content.cache.set_failed", "key", key, "error", err)
			}
		}
		return item, nil
	}

	return nil, &extcontent.NotFoundError{Resource: "content", Key: externalID}
}

// activeDefinition loads a template and filters out inactive ones. The nil
// definition return marks an inactive template with no error.
func (s *service) activeDefinition(ctx context.Context, templateID uuid.UUID) (*exttemplates.Definition, error) {
	definition, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !definition.IsActive {
		return nil, nil
	}
	return definition, nil
}

func baseVariables(definition *exttemplates.Definition) (map[string]any, error) {
	variables := map[string]any{}
	if definition.QueryVariables == nil {
		return variables, nil
	}
	raw := strings.TrimSpace(*definition.QueryVariables)
	if raw == "" {
		return variables, nil
	}
	if err := json.Unmarshal([]byte(raw), &variables); err != nil {
		return nil, fmt.Errorf("content: invalid query variables: %w", err)
	}
	return variables, nil
}
