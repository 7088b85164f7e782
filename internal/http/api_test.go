package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-external-content/graph"
	"github.com/goliatone/go-external-content/internal/di"
	internalhttp "github.com/goliatone/go-external-content/internal/http"
	"github.com/goliatone/go-external-content/internal/runtimeconfig"
)

type fakeGraphClient struct {
	response map[string]graph.Value
	err      error
}

func (c *fakeGraphClient) Execute(context.Context, string, map[string]any) (map[string]graph.Value, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.response, nil
}

func newTestRouter(t *testing.T, client graph.Client) http.Handler {
	t.Helper()

	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithGraphClient(client))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	api := internalhttp.NewAPI(
		internalhttp.WithTemplateService(container.TemplateService()),
		internalhttp.WithEndpointService(container.EndpointService()),
		internalhttp.WithReferenceService(container.ReferenceService()),
		internalhttp.WithContentService(container.ContentService()),
		internalhttp.WithRenderingService(container.RenderingService()),
	)
	return api.Router()
}

func postJSON(t *testing.T, router http.Handler, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createTemplate(t *testing.T, router http.Handler) map[string]any {
	t.Helper()

	rec := postJSON(t, router, "/templates", map[string]any{
		"content_type_name":  "ArticlePage",
		"display_name":       "Article",
		"edit_mode_template": "<h2>{{_title}}</h2>",
		"render_template":    "<article>{{name}}</article>",
		"query":              "query { ArticlePage { items { _id name } } }",
		"is_active":          true,
		"actor":              "editor@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create template status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return created
}

func TestTemplateLifecycle(t *testing.T) {
	router := newTestRouter(t, &fakeGraphClient{})

	created := createTemplate(t, router)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected created template to carry an id")
	}

	req := httptest.NewRequest(http.MethodGet, "/templates/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get template status = %d", rec.Code)
	}

	rec = postJSON(t, router, "/templates", map[string]any{
		"content_type_name":  "ArticlePage",
		"display_name":       "Duplicate",
		"edit_mode_template": "<p>x</p>",
		"render_template":    "<p>x</p>",
		"query":              "query {}",
		"is_active":          true,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate content type status = %d, want %d", rec.Code, http.StatusConflict)
	}

	req = httptest.NewRequest(http.MethodDelete, "/templates/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete template status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/templates/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted template status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestTemplateValidationErrors(t *testing.T) {
	router := newTestRouter(t, &fakeGraphClient{})

	rec := postJSON(t, router, "/templates", map[string]any{
		"display_name": "Missing fields",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid template status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestValidateAndPreviewRoutes(t *testing.T) {
	router := newTestRouter(t, &fakeGraphClient{})

	rec := postJSON(t, router, "/templates/validate", map[string]any{
		"template": "{{#items}}<li>{{name}}</li>{{/items}}",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status = %d", rec.Code)
	}
	var result struct {
		IsValid bool `json:"is_valid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode validate response: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected balanced template to validate, body %s", rec.Body.String())
	}

	rec = postJSON(t, router, "/templates/preview", map[string]any{
		"template":    "<h1>{{title}}</h1>",
		"sample_data": `{"title":"Hello"}`,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}
	var preview struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview response: %v", err)
	}
	if preview.HTML != "<h1>Hello</h1>" {
		t.Fatalf("preview html = %q", preview.HTML)
	}
}

func TestEndpointDefaultRoutes(t *testing.T) {
	router := newTestRouter(t, &fakeGraphClient{})

	req := httptest.NewRequest(http.MethodGet, "/endpoints/default", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("default without endpoints status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = postJSON(t, router, "/endpoints", map[string]any{
		"name":         "production",
		"endpoint_url": "https://graph.example.com/v1",
		"single_key":   "key-123",
		"is_default":   true,
		"is_active":    true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create endpoint status = %d, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/endpoints/default", nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("default endpoint status = %d", rec2.Code)
	}
	var endpoint map[string]any
	if err := json.Unmarshal(rec2.Body.Bytes(), &endpoint); err != nil {
		t.Fatalf("decode endpoint: %v", err)
	}
	if endpoint["name"] != "production" {
		t.Fatalf("default endpoint name = %v", endpoint["name"])
	}
}

func TestContentSearchAndRender(t *testing.T) {
	client := &fakeGraphClient{
		response: map[string]graph.Value{
			"ArticlePage": graph.Map(map[string]graph.Value{
				"items": graph.List([]graph.Value{
					graph.Map(map[string]graph.Value{
						"_id":  graph.String("a1"),
						"name": graph.String("Launch notes"),
					}),
				}),
				"total": graph.Int(1),
			}),
		},
	}
	router := newTestRouter(t, client)
	created := createTemplate(t, router)
	id, _ := created["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/content/"+id+"/search?q=launch", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", rec.Code, rec.Body.String())
	}
	var page struct {
		Items []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"items"`
		TotalCount   int  `json:"total_count"`
		HasMorePages bool `json:"has_more_pages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "a1" || page.Items[0].Title != "Launch notes" {
		t.Fatalf("unexpected search page: %+v", page)
	}
	if page.TotalCount != 1 || page.HasMorePages {
		t.Fatalf("unexpected pagination: %+v", page)
	}

	req = httptest.NewRequest(http.MethodGet, "/content/"+id+"/items/a1/render?mode=public", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d, body %s", rec.Code, rec.Body.String())
	}
	var rendered struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rendered); err != nil {
		t.Fatalf("decode render response: %v", err)
	}
	if rendered.HTML != "<article>Launch notes</article>" {
		t.Fatalf("render html = %q", rendered.HTML)
	}
}

func TestContentItemRemoteFailure(t *testing.T) {
	client := &fakeGraphClient{err: &graph.RemoteError{Status: 500, Message: "upstream down"}}
	router := newTestRouter(t, client)
	created := createTemplate(t, router)
	id, _ := created["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/content/"+id+"/items/a1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("remote failure status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestReferenceLifecycle(t *testing.T) {
	router := newTestRouter(t, &fakeGraphClient{})
	created := createTemplate(t, router)
	templateID, _ := created["id"].(string)

	rec := postJSON(t, router, "/references", map[string]any{
		"external_id": "a1",
		"template_id": templateID,
		"title":       "Launch notes",
		"actor":       "editor@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create reference status = %d, body %s", rec.Code, rec.Body.String())
	}
	var reference map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &reference); err != nil {
		t.Fatalf("decode reference: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/references/template/"+templateID, nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("list references status = %d", rec2.Code)
	}
	var listed []map[string]any
	if err := json.Unmarshal(rec2.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode reference list: %v", err)
	}
	if len(listed) != 1 || listed[0]["external_id"] != "a1" {
		t.Fatalf("unexpected reference list: %+v", listed)
	}
}
