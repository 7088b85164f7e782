// Package http exposes the module services over a JSON API. Routes cover
// template definition management, endpoint configuration, remote content
// lookup, and server-side rendering for edit-mode previews.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/endpoints"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	"github.com/goliatone/go-external-content/references"
	"github.com/goliatone/go-external-content/rendering"
	"github.com/goliatone/go-external-content/templates"
)

// API bundles the module services behind a chi router.
type API struct {
	templates  templates.Service
	endpoints  endpoints.Service
	references references.Service
	content    content.Service
	rendering  rendering.Service
	logger     interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// WithTemplateService wires the template definition service.
func WithTemplateService(svc templates.Service) Option {
	return func(api *API) {
		api.templates = svc
	}
}

// WithEndpointService wires the endpoint configuration service.
func WithEndpointService(svc endpoints.Service) Option {
	return func(api *API) {
		api.endpoints = svc
	}
}

// WithReferenceService wires the reference tracking service.
func WithReferenceService(svc references.Service) Option {
	return func(api *API) {
		api.references = svc
	}
}

// WithContentService wires the remote content service.
func WithContentService(svc content.Service) Option {
	return func(api *API) {
		api.content = svc
	}
}

// WithRenderingService wires the rendering service.
func WithRenderingService(svc rendering.Service) Option {
	return func(api *API) {
		api.rendering = svc
	}
}

// WithLogger wires the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Router builds the route tree for the configured services. Services left
// unset have their routes omitted.
func (api *API) Router() chi.Router {
	r := chi.NewRouter()

	if api.logger != nil {
		r.Use(api.logRequests)
	}

	if api.templates != nil {
		r.Mount("/templates", api.templateRoutes())
	}
	if api.endpoints != nil {
		r.Mount("/endpoints", api.endpointRoutes())
	}
	if api.references != nil {
		r.Mount("/references", api.referenceRoutes())
	}
	if api.content != nil {
		r.Mount("/content", api.contentRoutes())
	}

	return r
}

func (api *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.logger.WithContext(r.Context()).Debug("http.request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
