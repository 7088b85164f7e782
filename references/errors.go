package references

import (
	"errors"
	"fmt"
)

var (
	ErrExternalIDRequired  = errors.New("references: external id is required")
	ErrTemplateIDRequired  = errors.New("references: template id is required")
	ErrReferenceIDRequired = errors.New("references: reference id required")

	ErrNotFound = errors.New("references: not found")
)

// NotFoundError reports a missing reference lookup.
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
