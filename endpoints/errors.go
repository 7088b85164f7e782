package endpoints

import (
	"errors"
	"fmt"
)

var (
	ErrNameRequired       = errors.New("endpoints: name is required")
	ErrURLRequired        = errors.New("endpoints: endpoint url is required")
	ErrEndpointIDRequired = errors.New("endpoints: endpoint id required")
	ErrNoDefault          = errors.New("endpoints: no default endpoint configured")

	ErrNotFound = errors.New("endpoints: not found")
)

// NotFoundError reports a missing endpoint lookup.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
