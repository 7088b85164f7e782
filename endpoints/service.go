package endpoints

import (
	"context"

	"github.com/google/uuid"
)

// Service manages graph endpoint configurations. Marking an endpoint as the
// default clears the flag from every other endpoint in the same write, so the
// default is always unique.
type Service interface {
	List(ctx context.Context) ([]*Endpoint, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Endpoint, error)
	GetDefault(ctx context.Context) (*Endpoint, error)
	Create(ctx context.Context, req CreateEndpointRequest) (*Endpoint, error)
	Update(ctx context.Context, req UpdateEndpointRequest) (*Endpoint, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, id uuid.UUID) error
}

// CreateEndpointRequest captures the fields required to register an endpoint.
type CreateEndpointRequest struct {
	Name      string
	URL       string
	SingleKey *string
	AppKey    *string
	AppSecret *string
	IsDefault bool
	IsActive  bool
	Author    string
}

// UpdateEndpointRequest captures mutable fields for an existing endpoint.
type UpdateEndpointRequest struct {
	ID        uuid.UUID
	Name      string
	URL       string
	SingleKey *string
	AppKey    *string
	AppSecret *string
	IsDefault bool
	IsActive  bool
	Editor    string
}
