package content

import (
	"github.com/goliatone/go-external-content/graph"
	"github.com/google/uuid"
)

// Item is one external content item after normalization: resolved display
// fields plus the item's full payload as canonical values for template
// rendering.
type Item struct {
	ID           string                 `json:"id"`
	ContentType  string                 `json:"content_type"`
	Title        string                 `json:"title"`
	ThumbnailURL string                 `json:"thumbnail_url,omitempty"`
	Data         map[string]graph.Value `json:"-"`
}

// SearchRequest describes one page of an external content search. Page is
// 1-based; out-of-range page or page size values are normalized before use.
type SearchRequest struct {
	TemplateID uuid.UUID
	Query      string
	Page       int
	PageSize   int
	Locale     string
}

// SearchResponse holds one page of search results.
type SearchResponse struct {
	Items      []*Item `json:"items"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

// HasMorePages reports whether another page exists beyond this one.
func (r *SearchResponse) HasMorePages() bool {
	return r.Page*r.PageSize < r.TotalCount
}
