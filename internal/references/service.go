package references

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	extreferences "github.com/goliatone/go-external-content/references"
	"github.com/google/uuid"
)

// ServiceOption configures the reference service.
type ServiceOption func(*service)

// WithClock overrides the time source used for created/cache stamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the id source used for new references.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
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

// NewService constructs the content reference service.
func NewService(repo ReferenceRepository, opts ...ServiceOption) extreferences.Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type service struct {
	repo   ReferenceRepository
	logger interfaces.Logger
	now    func() time.Time
	id     func() uuid.UUID
}

func (s *service) Create(ctx context.Context, req extreferences.CreateReferenceRequest) (*extreferences.Reference, error) {
	externalID := strings.TrimSpace(req.ExternalID)
	if externalID == "" {
		return nil, extreferences.ErrExternalIDRequired
	}
	if req.TemplateID == uuid.Nil {
		return nil, extreferences.ErrTemplateIDRequired
	}

	// Reuse an existing selection of the same item instead of duplicating it.
	existing, err := s.repo.GetByExternalID(ctx, req.TemplateID, externalID)
	if err == nil {
		return s.applySnapshot(ctx, existing, req.Snapshot)
	}

	now := s.now().UTC()
	reference := &extreferences.Reference{
		ID:         s.id(),
		ExternalID: externalID,
		TemplateID: req.TemplateID,
		CreatedAt:  now,
	}
	if author := strings.TrimSpace(req.Author); author != "" {
		reference.CreatedBy = &author
	}
	writeSnapshot(reference, req.Snapshot, now)

	return s.repo.Create(ctx, reference)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*extreferences.Reference, error) {
	if id == uuid.Nil {
		return nil, extreferences.ErrReferenceIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByExternalID(ctx context.Context, templateID uuid.UUID, externalID string) (*extreferences.Reference, error) {
	if templateID == uuid.Nil {
		return nil, extreferences.ErrTemplateIDRequired
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, extreferences.ErrExternalIDRequired
	}
	return s.repo.GetByExternalID(ctx, templateID, externalID)
}

func (s *service) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]*extreferences.Reference, error) {
	if templateID == uuid.Nil {
		return nil, extreferences.ErrTemplateIDRequired
	}
	return s.repo.ListByTemplate(ctx, templateID)
}

func (s *service) Touch(ctx context.Context, id uuid.UUID, snapshot extreferences.Snapshot) (*extreferences.Reference, error) {
	if id == uuid.Nil {
		return nil, extreferences.ErrReferenceIDRequired
	}

	reference, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applySnapshot(ctx, reference, snapshot)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return extreferences.ErrReferenceIDRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) applySnapshot(ctx context.Context, reference *extreferences.Reference, snapshot extreferences.Snapshot) (*extreferences.Reference, error) {
	writeSnapshot(reference, snapshot, s.now().UTC())
	return s.repo.Update(ctx, reference)
}

func writeSnapshot(reference *extreferences.Reference, snapshot extreferences.Snapshot, at time.Time) {
	if title := strings.TrimSpace(snapshot.Title); title != "" {
		reference.CachedTitle = &title
	}
	if thumbnail := strings.TrimSpace(snapshot.ThumbnailURL); thumbnail != "" {
		reference.CachedThumbnailURL = &thumbnail
	}
	if data := strings.TrimSpace(snapshot.Data); data != "" {
		reference.CachedData = &data
	}
	reference.CacheUpdatedAt = &at
}
