package endpoints

import (
	"context"
	"strings"
	"time"

	extendpoints "github.com/goliatone/go-external-content/endpoints"
	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	"github.com/google/uuid"
)

// ServiceOption configures the endpoint service.
type ServiceOption func(*service)

// WithClock overrides the time source used for created/modified stamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the id source used for new endpoints.
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

// NewService constructs the endpoint configuration service.
func NewService(repo EndpointRepository, opts ...ServiceOption) extendpoints.Service {
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
	repo   EndpointRepository
	logger interfaces.Logger
	now    func() time.Time
	id     func() uuid.UUID
}

func (s *service) List(ctx context.Context) ([]*extendpoints.Endpoint, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*extendpoints.Endpoint, error) {
	if id == uuid.Nil {
		return nil, extendpoints.ErrEndpointIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetDefault(ctx context.Context) (*extendpoints.Endpoint, error) {
	return s.repo.GetDefault(ctx)
}

func (s *service) Create(ctx context.Context, req extendpoints.CreateEndpointRequest) (*extendpoints.Endpoint, error) {
	if err := validateEndpointFields(req.Name, req.URL); err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.clearDefaults(ctx, uuid.Nil); err != nil {
			return nil, err
		}
	}

	endpoint := &extendpoints.Endpoint{
		ID:        s.id(),
		Name:      strings.TrimSpace(req.Name),
		URL:       strings.TrimSpace(req.URL),
		SingleKey: req.SingleKey,
		AppKey:    req.AppKey,
		AppSecret: req.AppSecret,
		IsDefault: req.IsDefault,
		IsActive:  req.IsActive,
		CreatedAt: s.now().UTC(),
	}
	if author := strings.TrimSpace(req.Author); author != "" {
		endpoint.CreatedBy = &author
	}

	return s.repo.Create(ctx, endpoint)
}

func (s *service) Update(ctx context.Context, req extendpoints.UpdateEndpointRequest) (*extendpoints.Endpoint, error) {
	if req.ID == uuid.Nil {
		return nil, extendpoints.ErrEndpointIDRequired
	}
	if err := validateEndpointFields(req.Name, req.URL); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.IsDefault && !existing.IsDefault {
		if err := s.clearDefaults(ctx, req.ID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	existing.Name = strings.TrimSpace(req.Name)
	existing.URL = strings.TrimSpace(req.URL)
	existing.SingleKey = req.SingleKey
	existing.AppKey = req.AppKey
	existing.AppSecret = req.AppSecret
	existing.IsDefault = req.IsDefault
	existing.IsActive = req.IsActive
	existing.ModifiedAt = &now
	if editor := strings.TrimSpace(req.Editor); editor != "" {
		existing.ModifiedBy = &editor
	}

	return s.repo.Update(ctx, existing)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return extendpoints.ErrEndpointIDRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetDefault(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return extendpoints.ErrEndpointIDRequired
	}

	endpoint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.clearDefaults(ctx, id); err != nil {
		return err
	}

	if endpoint.IsDefault {
		return nil
	}

	now := s.now().UTC()
	endpoint.IsDefault = true
	endpoint.ModifiedAt = &now
	_, err = s.repo.Update(ctx, endpoint)
	return err
}

// clearDefaults unsets the default flag everywhere except keep. Runs inside
// the same logical write as the promotion that follows it.
func (s *service) clearDefaults(ctx context.Context, keep uuid.UUID) error {
	defaults, err := s.repo.ListDefaults(ctx)
	if err != nil {
		return err
	}
	for _, endpoint := range defaults {
		if endpoint.ID == keep {
			continue
		}
		endpoint.IsDefault = false
		if _, err := s.repo.Update(ctx, endpoint); err != nil {
			return err
		}
	}
	return nil
}

func validateEndpointFields(name, url string) error {
	if strings.TrimSpace(name) == "" {
		return extendpoints.ErrNameRequired
	}
	if strings.TrimSpace(url) == "" {
		return extendpoints.ErrURLRequired
	}
	return nil
}
