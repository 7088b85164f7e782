package graphclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	extendpoints "github.com/goliatone/go-external-content/endpoints"
	"github.com/goliatone/go-external-content/graph"
	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultTimeout bounds remote query execution when no custom HTTP client
// is supplied.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 4 << 10

// Option configures the graph client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for remote calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithEndpointID pins the client to a specific endpoint configuration
// instead of the default one.
func WithEndpointID(id uuid.UUID) Option {
	return func(c *Client) {
		c.endpointID = id
	}
}

// WithLogger injects the client logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs an HTTP-backed graph client. The endpoint
// configuration (URL and credentials) is resolved per call so configuration
// changes take effect without a rebuild.
func NewClient(endpoints extendpoints.Service, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		http:      &http.Client{Timeout: DefaultTimeout},
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client executes graph queries over HTTP against a configured endpoint.
type Client struct {
	endpoints  extendpoints.Service
	http       *http.Client
	logger     interfaces.Logger
	endpointID uuid.UUID
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Execute satisfies graph.Client. The response data tree is normalized into
// canonical values; failures come back as classified errors.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (map[string]graph.Value, error) {
	endpoint, err := c.resolveEndpoint(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("graphclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("graphclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth := authorizationHeader(endpoint); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &graph.RemoteError{Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, &graph.RemoteError{
			Status:  res.StatusCode,
			Message: strings.TrimSpace(string(snippet)),
		}
	}

	decoder := json.NewDecoder(res.Body)
	decoder.UseNumber()

	var payload response
	if err := decoder.Decode(&payload); err != nil {
		return nil, &graph.RemoteError{Status: res.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}

	if len(payload.Errors) > 0 {
		messages := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			messages = append(messages, e.Message)
		}
		c.logger.Error("graphclient.query_errors", "errors", strings.Join(messages, ", "))
		return nil, &graph.RemoteError{Status: res.StatusCode, Message: strings.Join(messages, ", ")}
	}

	return graph.ConvertMap(payload.Data), nil
}

func (c *Client) resolveEndpoint(ctx context.Context) (*extendpoints.Endpoint, error) {
	var endpoint *extendpoints.Endpoint
	var err error
	if c.endpointID != uuid.Nil {
		endpoint, err = c.endpoints.GetByID(ctx, c.endpointID)
	} else {
		endpoint, err = c.endpoints.GetDefault(ctx)
	}
	if err != nil {
		if errors.Is(err, extendpoints.ErrNoDefault) || errors.Is(err, extendpoints.ErrNotFound) {
			return nil, graph.ErrNoEndpoint
		}
		return nil, err
	}
	if !endpoint.IsActive {
		return nil, graph.ErrNoEndpoint
	}
	return endpoint, nil
}

func authorizationHeader(endpoint *extendpoints.Endpoint) string {
	if endpoint.HasSingleKey() {
		return "epi-single " + strings.TrimSpace(*endpoint.SingleKey)
	}
	if endpoint.HasAppCredentials() {
		credentials := strings.TrimSpace(*endpoint.AppKey) + ":" + strings.TrimSpace(*endpoint.AppSecret)
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
	}
	return ""
}
