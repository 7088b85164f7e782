package content

import (
	"context"

	"github.com/google/uuid"
)

// Service orchestrates external content lookups: it resolves the template,
// executes the remote graph query, and normalizes the response into Items.
// Remote failures degrade to empty results for Search; GetByID surfaces a
// typed not-found error when the item cannot be located.
type Service interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	GetByID(ctx context.Context, templateID uuid.UUID, externalID string) (*Item, error)
}
