package graph

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoEndpoint indicates that no active endpoint configuration exists.
	ErrNoEndpoint = errors.New("graph: no endpoint configured")
	// ErrRemote indicates the remote data source reported a failure.
	ErrRemote = errors.New("graph: remote query failed")
)

// RemoteError carries the classified reason for a failed remote query so
// callers can distinguish transport failures from query-level errors when
// they choose to. Current consumers treat every failure as an empty result.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ErrRemote.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status=%d %s", ErrRemote.Error(), e.Status, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", ErrRemote.Error(), e.Message)
	}
	return ErrRemote.Error()
}

func (e *RemoteError) Unwrap() error {
	return ErrRemote
}

// Client executes queries against the remote graph data source. Execute
// returns the normalized response data or a classified error; it never
// panics across this boundary and honors context cancellation.
type Client interface {
	Execute(ctx context.Context, query string, variables map[string]any) (map[string]Value, error)
}
