package content

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateIDRequired = errors.New("content: template id required")
	ErrExternalIDRequired = errors.New("content: external id required")

	ErrNotFound = errors.New("content: not found")
)

// NotFoundError reports a missing external content item lookup.
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
