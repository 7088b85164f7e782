package templates

import (
	"errors"
	"fmt"
)

var (
	ErrContentTypeNameRequired  = errors.New("templates: content type name is required")
	ErrDisplayNameRequired      = errors.New("templates: display name is required")
	ErrEditModeTemplateRequired = errors.New("templates: edit mode template is required")
	ErrRenderTemplateRequired   = errors.New("templates: render template is required")
	ErrQueryRequired            = errors.New("templates: query is required")
	ErrContentTypeNameExists    = errors.New("templates: content type name already registered")
	ErrDefinitionIDRequired     = errors.New("templates: definition id required")

	ErrNotFound = errors.New("templates: not found")
)

// NotFoundError reports a missing template definition lookup.
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
