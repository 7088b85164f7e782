package graphclient_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-external-content/endpoints"
	"github.com/goliatone/go-external-content/graph"
	internalendpoints "github.com/goliatone/go-external-content/internal/endpoints"
	"github.com/goliatone/go-external-content/internal/graphclient"
)

func strptr(s string) *string { return &s }

func newEndpointService(t *testing.T, url string, mutate func(*endpoints.CreateEndpointRequest)) endpoints.Service {
	t.Helper()
	svc := internalendpoints.NewService(internalendpoints.NewMemoryEndpointRepository())
	req := endpoints.CreateEndpointRequest{
		Name:      "Test",
		URL:       url,
		IsDefault: true,
		IsActive:  true,
	}
	if mutate != nil {
		mutate(&req)
	}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create endpoint returned error: %v", err)
	}
	return svc
}

func TestExecutePostsQueryAndNormalizesResponse(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"products":{"items":[{"id":"p-1","price":19.99,"stock":4}]},"total":1}}`))
	}))
	defer server.Close()

	client := graphclient.NewClient(newEndpointService(t, server.URL, nil))

	result, err := client.Execute(context.Background(), "query { products }", map[string]any{"limit": 10})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if gotBody["query"] != "query { products }" {
		t.Fatalf("expected query in body, got %v", gotBody["query"])
	}
	vars, ok := gotBody["variables"].(map[string]any)
	if !ok || vars["limit"] != float64(10) {
		t.Fatalf("expected variables in body, got %v", gotBody["variables"])
	}

	total, ok := result["total"]
	if !ok || total.Kind() != graph.KindInt || total.IntVal() != 1 {
		t.Fatalf("expected integer total, got %+v", total)
	}

	products := result["products"].MapVal()
	item := products["items"].ListVal()[0].MapVal()
	if item["id"].Text() != "p-1" {
		t.Fatalf("expected item id, got %+v", item["id"])
	}
	if item["price"].Kind() != graph.KindFloat {
		t.Fatalf("expected float price, got %v", item["price"].Kind())
	}
	if item["stock"].Kind() != graph.KindInt || item["stock"].IntVal() != 4 {
		t.Fatalf("expected integer stock, got %+v", item["stock"])
	}
}

func TestExecuteSendsSingleKeyAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	svc := newEndpointService(t, server.URL, func(r *endpoints.CreateEndpointRequest) {
		r.SingleKey = strptr("abc123")
	})
	client := graphclient.NewClient(svc)

	if _, err := client.Execute(context.Background(), "query {}", nil); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if gotAuth != "epi-single abc123" {
		t.Fatalf("expected single key header, got %q", gotAuth)
	}
}

func TestExecuteSendsBasicAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	svc := newEndpointService(t, server.URL, func(r *endpoints.CreateEndpointRequest) {
		r.AppKey = strptr("app")
		r.AppSecret = strptr("secret")
	})
	client := graphclient.NewClient(svc)

	if _, err := client.Execute(context.Background(), "query {}", nil); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("app:secret"))
	if gotAuth != want {
		t.Fatalf("expected basic auth header %q, got %q", want, gotAuth)
	}
}

func TestExecuteSingleKeyTakesPrecedence(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	svc := newEndpointService(t, server.URL, func(r *endpoints.CreateEndpointRequest) {
		r.SingleKey = strptr("abc123")
		r.AppKey = strptr("app")
		r.AppSecret = strptr("secret")
	})
	client := graphclient.NewClient(svc)

	if _, err := client.Execute(context.Background(), "query {}", nil); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if gotAuth != "epi-single abc123" {
		t.Fatalf("expected single key to win, got %q", gotAuth)
	}
}

func TestExecuteNoEndpointConfigured(t *testing.T) {
	svc := internalendpoints.NewService(internalendpoints.NewMemoryEndpointRepository())
	client := graphclient.NewClient(svc)

	if _, err := client.Execute(context.Background(), "query {}", nil); !errors.Is(err, graph.ErrNoEndpoint) {
		t.Fatalf("expected ErrNoEndpoint, got %v", err)
	}
}

func TestExecuteClassifiesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := graphclient.NewClient(newEndpointService(t, server.URL, nil))

	_, err := client.Execute(context.Background(), "query {}", nil)
	if !errors.Is(err, graph.ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
	var remote *graph.RemoteError
	if !errors.As(err, &remote) || remote.Status != http.StatusBadGateway {
		t.Fatalf("expected status classification, got %+v", err)
	}
}

func TestExecuteClassifiesQueryErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"field missing"},{"message":"bad argument"}]}`))
	}))
	defer server.Close()

	client := graphclient.NewClient(newEndpointService(t, server.URL, nil))

	_, err := client.Execute(context.Background(), "query {}", nil)
	if !errors.Is(err, graph.ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
	var remote *graph.RemoteError
	if !errors.As(err, &remote) || remote.Message != "field missing, bad argument" {
		t.Fatalf("expected joined error messages, got %+v", err)
	}
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read and can
		// observe the client disconnect, unblocking r.Context() on cancel.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := graphclient.NewClient(newEndpointService(t, server.URL, nil))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if _, err := client.Execute(ctx, "query {}", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestExecuteInactiveEndpoint(t *testing.T) {
	svc := newEndpointService(t, "https://example.com/graph", func(r *endpoints.CreateEndpointRequest) {
		r.IsActive = false
	})
	client := graphclient.NewClient(svc)

	if _, err := client.Execute(context.Background(), "query {}", nil); !errors.Is(err, graph.ErrNoEndpoint) {
		t.Fatalf("expected ErrNoEndpoint for inactive endpoint, got %v", err)
	}
}
