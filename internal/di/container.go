package di

import (
	"net/http"

	extcontent "github.com/goliatone/go-external-content/content"
	extendpoints "github.com/goliatone/go-external-content/endpoints"
	"github.com/goliatone/go-external-content/graph"
	"github.com/goliatone/go-external-content/internal/cache"
	"github.com/goliatone/go-external-content/internal/content"
	"github.com/goliatone/go-external-content/internal/endpoints"
	"github.com/goliatone/go-external-content/internal/graphclient"
	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/internal/logging/gologger"
	"github.com/goliatone/go-external-content/internal/references"
	"github.com/goliatone/go-external-content/internal/rendering"
	"github.com/goliatone/go-external-content/internal/runtimeconfig"
	"github.com/goliatone/go-external-content/internal/templates"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	extreferences "github.com/goliatone/go-external-content/references"
	extrendering "github.com/goliatone/go-external-content/rendering"
	exttemplates "github.com/goliatone/go-external-content/templates"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires repositories, adapters, and services behind a single
// construction point. Memory-backed repositories are the default; supplying
// a bun.DB switches persistence to SQL with optional repository caching.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	httpClient     *http.Client
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	cacheProvider  interfaces.CacheProvider
	loggerProvider interfaces.LoggerProvider
	graphClient    graph.Client

	templateRepo  templates.DefinitionRepository
	endpointRepo  endpoints.EndpointRepository
	referenceRepo references.ReferenceRepository

	templateSvc  exttemplates.Service
	endpointSvc  extendpoints.Service
	referenceSvc extreferences.Service
	contentSvc   extcontent.Service
	renderingSvc extrendering.Service
}

// Option mutates the container during construction.
type Option func(*Container)

// WithBunDB switches persistence to the supplied bun database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithHTTPClient overrides the HTTP client used by the default graph client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithCache supplies a repository-level cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCacheProvider overrides the service-level cache used for template
// definitions and content items.
func WithCacheProvider(provider interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.cacheProvider = provider
	}
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithGraphClient overrides the remote graph client.
func WithGraphClient(client graph.Client) Option {
	return func(c *Container) {
		c.graphClient = client
	}
}

// WithTemplateRepository overrides the template definition repository.
func WithTemplateRepository(repo templates.DefinitionRepository) Option {
	return func(c *Container) {
		c.templateRepo = repo
	}
}

// WithEndpointRepository overrides the endpoint configuration repository.
func WithEndpointRepository(repo endpoints.EndpointRepository) Option {
	return func(c *Container) {
		c.endpointRepo = repo
	}
}

// WithReferenceRepository overrides the content reference repository.
func WithReferenceRepository(repo references.ReferenceRepository) Option {
	return func(c *Container) {
		c.referenceRepo = repo
	}
}

// WithTemplateService overrides the template service.
func WithTemplateService(svc exttemplates.Service) Option {
	return func(c *Container) {
		c.templateSvc = svc
	}
}

// WithEndpointService overrides the endpoint service.
func WithEndpointService(svc extendpoints.Service) Option {
	return func(c *Container) {
		c.endpointSvc = svc
	}
}

// WithReferenceService overrides the reference service.
func WithReferenceService(svc extreferences.Service) Option {
	return func(c *Container) {
		c.referenceSvc = svc
	}
}

// WithContentService overrides the content service.
func WithContentService(svc extcontent.Service) Option {
	return func(c *Container) {
		c.contentSvc = svc
	}
}

// WithRenderingService overrides the rendering service.
func WithRenderingService(svc extrendering.Service) Option {
	return func(c *Container) {
		c.renderingSvc = svc
	}
}

// NewContainer validates the configuration, applies options, and builds the
// full service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:        cfg,
		templateRepo:  templates.NewMemoryDefinitionRepository(),
		endpointRepo:  endpoints.NewMemoryEndpointRepository(),
		referenceRepo: references.NewMemoryReferenceRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}

	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureCacheProvider()
	c.configureGraphClient()
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	}
	if c.Config.Logging.Provider == "console" && logCfg.Format == "" {
		logCfg.Format = "console"
	}

	provider, err := gologger.NewProvider(logCfg)
	if err != nil {
		return err
	}
	c.loggerProvider = provider

	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || !c.Config.Features.AdvancedCache {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if ttl := c.Config.Cache.TemplateTTL; ttl > 0 {
			cfg.TTL = ttl
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.templateRepo = templates.NewBunDefinitionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.endpointRepo = endpoints.NewBunEndpointRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.referenceRepo = references.NewBunReferenceRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureCacheProvider() {
	if c.cacheProvider != nil || !c.Config.Cache.Enabled {
		return
	}
	c.cacheProvider = cache.NewMemory()
}

func (c *Container) configureGraphClient() {
	if c.graphClient != nil {
		return
	}

	clientOpts := []graphclient.Option{
		graphclient.WithLogger(logging.GraphLogger(c.loggerProvider)),
	}
	if c.httpClient != nil {
		clientOpts = append(clientOpts, graphclient.WithHTTPClient(c.httpClient))
	} else if timeout := c.Config.Graph.Timeout; timeout > 0 {
		clientOpts = append(clientOpts, graphclient.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	c.graphClient = graphclient.NewClient(c.EndpointService(), clientOpts...)
}

func (c *Container) configureServices() {
	if c.endpointSvc == nil {
		c.endpointSvc = endpoints.NewService(
			c.endpointRepo,
			endpoints.WithLogger(logging.EndpointsLogger(c.loggerProvider)),
		)
	}

	if c.templateSvc == nil {
		templateOpts := []templates.ServiceOption{
			templates.WithLogger(logging.TemplatesLogger(c.loggerProvider)),
		}
		if ttl := c.Config.Cache.TemplateTTL; ttl > 0 {
			templateOpts = append(templateOpts, templates.WithCacheTTL(ttl))
		}
		c.templateSvc = templates.NewService(c.templateRepo, c.cacheProvider, templateOpts...)
	}

	if c.referenceSvc == nil {
		c.referenceSvc = references.NewService(
			c.referenceRepo,
			references.WithLogger(logging.ModuleLogger(c.loggerProvider, "extcontent.references")),
		)
	}

	if c.contentSvc == nil {
		contentOpts := []content.ServiceOption{
			content.WithLogger(logging.ContentLogger(c.loggerProvider)),
		}
		if ttl := c.Config.Cache.ContentTTL; ttl > 0 {
			contentOpts = append(contentOpts, content.WithCacheTTL(ttl))
		}
		c.contentSvc = content.NewService(c.templateSvc, c.graphClient, c.cacheProvider, contentOpts...)
	}

	if c.renderingSvc == nil {
		c.renderingSvc = rendering.NewService(
			c.templateSvc,
			rendering.WithLogger(logging.RenderingLogger(c.loggerProvider)),
		)
	}
}

// TemplateService returns the configured template service.
func (c *Container) TemplateService() exttemplates.Service {
	return c.templateSvc
}

// EndpointService returns the configured endpoint service, building it on
// demand so dependent adapters can resolve it during construction.
func (c *Container) EndpointService() extendpoints.Service {
	if c.endpointSvc == nil {
		c.endpointSvc = endpoints.NewService(
			c.endpointRepo,
			endpoints.WithLogger(logging.EndpointsLogger(c.loggerProvider)),
		)
	}
	return c.endpointSvc
}

// ReferenceService returns the configured reference service.
func (c *Container) ReferenceService() extreferences.Service {
	return c.referenceSvc
}

// ContentService returns the configured content service.
func (c *Container) ContentService() extcontent.Service {
	return c.contentSvc
}

// RenderingService returns the configured rendering service.
func (c *Container) RenderingService() extrendering.Service {
	return c.renderingSvc
}

// GraphClient returns the configured remote graph client.
func (c *Container) GraphClient() graph.Client {
	return c.graphClient
}

// CacheProvider returns the service-level cache, nil when caching is disabled.
func (c *Container) CacheProvider() interfaces.CacheProvider {
	return c.cacheProvider
}

// LoggerProvider returns the configured logger provider, nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB returns the bun database when SQL persistence is configured.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}
