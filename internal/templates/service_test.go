package templates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-external-content/internal/cache"
	internaltemplates "github.com/goliatone/go-external-content/internal/templates"
	"github.com/goliatone/go-external-content/templates"
)

func newTestService(t *testing.T) (templates.Service, *cache.Memory) {
	t.Helper()
	provider := cache.NewMemory()
	svc := internaltemplates.NewService(
		internaltemplates.NewMemoryDefinitionRepository(),
		provider,
		internaltemplates.WithClock(func() time.Time {
			return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
	return svc, provider
}

func validCreateRequest(contentType string) templates.CreateDefinitionRequest {
	return templates.CreateDefinitionRequest{
		ContentTypeName:  contentType,
		DisplayName:      "Product Card",
		EditModeTemplate: `<div>{{title}}</div>`,
		RenderTemplate:   `<article>{{title}}</article>`,
		Query:            `query ($id: String) { product(id: $id) { title } }`,
		IsActive:         true,
	}
}

func TestServiceCreateAndGetByID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest("ProductBlock"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}

	fetched, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if fetched.ContentTypeName != "ProductBlock" {
		t.Fatalf("expected content type preserved, got %q", fetched.ContentTypeName)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*templates.CreateDefinitionRequest)
		wantErr error
	}{
		{"missing content type", func(r *templates.CreateDefinitionRequest) { r.ContentTypeName = "  " }, templates.ErrContentTypeNameRequired},
		{"missing display name", func(r *templates.CreateDefinitionRequest) { r.DisplayName = "" }, templates.ErrDisplayNameRequired},
		{"missing edit template", func(r *templates.CreateDefinitionRequest) { r.EditModeTemplate = "" }, templates.ErrEditModeTemplateRequired},
		{"missing render template", func(r *templates.CreateDefinitionRequest) { r.RenderTemplate = "" }, templates.ErrRenderTemplateRequired},
		{"missing query", func(r *templates.CreateDefinitionRequest) { r.Query = "" }, templates.ErrQueryRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest("ArticleBlock")
			tc.mutate(&req)
			if _, err := svc.Create(ctx, req); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestServiceCreateRejectsDuplicateContentType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateRequest("HeroBlock")); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, validCreateRequest("HeroBlock")); !errors.Is(err, templates.ErrContentTypeNameExists) {
		t.Fatalf("expected ErrContentTypeNameExists, got %v", err)
	}
}

func TestServiceUpdateKeepsOwnContentType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest("HeroBlock"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	req := templates.UpdateDefinitionRequest{
		ID:               created.ID,
		ContentTypeName:  "HeroBlock",
		DisplayName:      "Hero Card v2",
		EditModeTemplate: created.EditModeTemplate,
		RenderTemplate:   created.RenderTemplate,
		Query:            created.Query,
		IsActive:         true,
		Editor:           "editor@example.com",
	}
	updated, err := svc.Update(ctx, req)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.DisplayName != "Hero Card v2" {
		t.Fatalf("expected display name change, got %q", updated.DisplayName)
	}
	if updated.ModifiedAt == nil {
		t.Fatal("expected modified timestamp")
	}
	if updated.ModifiedBy == nil || *updated.ModifiedBy != "editor@example.com" {
		t.Fatal("expected editor recorded")
	}
}

func TestServiceGetByIDReflectsUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest("QuoteBlock"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Prime the per-definition cache entry.
	if _, err := svc.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}

	req := templates.UpdateDefinitionRequest{
		ID:               created.ID,
		ContentTypeName:  "QuoteBlock",
		DisplayName:      "Quote Card",
		EditModeTemplate: `<blockquote>{{text}}</blockquote>`,
		RenderTemplate:   created.RenderTemplate,
		Query:            created.Query,
		IsActive:         true,
	}
	if _, err := svc.Update(ctx, req); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	fetched, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after update returned error: %v", err)
	}
	if fetched.EditModeTemplate != `<blockquote>{{text}}</blockquote>` {
		t.Fatalf("expected updated template, got %q", fetched.EditModeTemplate)
	}
}

func TestServiceListReflectsDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreateRequest("FirstBlock"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, validCreateRequest("SecondBlock")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Prime the collection cache.
	if records, err := svc.List(ctx); err != nil || len(records) != 2 {
		t.Fatalf("expected 2 definitions, got %d (err %v)", len(records), err)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 definition after delete, got %d", len(records))
	}
	if records[0].ContentTypeName != "SecondBlock" {
		t.Fatalf("expected surviving definition, got %q", records[0].ContentTypeName)
	}

	if _, err := svc.GetByID(ctx, first.ID); !errors.Is(err, templates.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestServiceListCallersCannotMutateCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateRequest("HeroBlock")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Prime the collection cache, then scribble over the returned records.
	records, err := svc.List(ctx)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 definition, got %d (err %v)", len(records), err)
	}
	records[0].ContentTypeName = "MangledBlock"
	records[0].RenderTemplate = "<p>mangled</p>"

	again, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if again[0].ContentTypeName != "HeroBlock" {
		t.Fatalf("expected cached definition untouched, got %q", again[0].ContentTypeName)
	}
	if again[0].RenderTemplate != `<article>{{title}}</article>` {
		t.Fatalf("expected render template untouched, got %q", again[0].RenderTemplate)
	}
}

func TestServiceGetByContentTypeSkipsInactive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := validCreateRequest("DraftBlock")
	req.IsActive = false
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.GetByContentType(ctx, "DraftBlock"); !errors.Is(err, templates.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive definition, got %v", err)
	}
}

func TestServiceGetByIDRequiresID(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GetByID(context.Background(), uuid.Nil); !errors.Is(err, templates.ErrDefinitionIDRequired) {
		t.Fatalf("expected ErrDefinitionIDRequired, got %v", err)
	}
}
