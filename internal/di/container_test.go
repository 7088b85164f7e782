package di_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/graph"
	"github.com/goliatone/go-external-content/internal/di"
	"github.com/goliatone/go-external-content/internal/runtimeconfig"
	"github.com/goliatone/go-external-content/templates"
)

func TestNewContainerDefaults(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.TemplateService() == nil {
		t.Fatal("expected template service")
	}
	if container.EndpointService() == nil {
		t.Fatal("expected endpoint service")
	}
	if container.ReferenceService() == nil {
		t.Fatal("expected reference service")
	}
	if container.ContentService() == nil {
		t.Fatal("expected content service")
	}
	if container.RenderingService() == nil {
		t.Fatal("expected rendering service")
	}
	if container.GraphClient() == nil {
		t.Fatal("expected graph client")
	}
	if container.CacheProvider() == nil {
		t.Fatal("expected cache provider when cache is enabled")
	}
	if container.LoggerProvider() != nil {
		t.Fatal("expected no logger provider when logging feature is disabled")
	}
	if container.DB() != nil {
		t.Fatal("expected no bun database by default")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "etcd"

	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected error for unsupported storage provider")
	}
}

func TestNewContainerCacheDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.CacheProvider() != nil {
		t.Fatal("expected no cache provider when cache is disabled")
	}
}

func TestNewContainerLoggerFeature(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider := container.LoggerProvider()
	if provider == nil {
		t.Fatal("expected logger provider when logging feature is enabled")
	}
	if provider.GetLogger("extcontent.test") == nil {
		t.Fatal("expected provider to return named loggers")
	}
}

type stubGraphClient struct{}

func (stubGraphClient) Execute(context.Context, string, map[string]any) (map[string]graph.Value, error) {
	return map[string]graph.Value{}, nil
}

func TestNewContainerGraphClientOverride(t *testing.T) {
	client := stubGraphClient{}

	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithGraphClient(client))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.GraphClient() != graph.Client(client) {
		t.Fatal("expected injected graph client to be retained")
	}
}

func TestContainerServicesShareTemplateStore(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	ctx := context.Background()
	definition, err := container.TemplateService().Create(ctx, templates.CreateDefinitionRequest{
		ContentTypeName:  "ArticlePage",
		DisplayName:      "Article",
		EditModeTemplate: "<h2>{{_title}}</h2>",
		RenderTemplate:   "<article>{{_title}}</article>",
		Query:            "query { ArticlePage { items { _id name } } }",
		IsActive:         true,
		Author:           "editor@example.com",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	item := &content.Item{
		ID:          "a1",
		ContentType: "ArticlePage",
		Title:       "Launch notes",
	}

	rendered := container.RenderingService().RenderPublic(ctx, definition.ID, item)
	if !strings.Contains(rendered, "Launch notes") {
		t.Fatalf("expected rendered output to include title, got %q", rendered)
	}
}
