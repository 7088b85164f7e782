package references

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Reference records an editor's selection of one external content item: the
// remote item id, the template that renders it, and a cached snapshot of the
// item's title, thumbnail, and raw payload for display without a round trip.
type Reference struct {
	bun.BaseModel `bun:"table:external_content_references,alias:ecr"`

	ID                 uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	ExternalID         string     `bun:"external_id,notnull" json:"external_id"`
	TemplateID         uuid.UUID  `bun:"template_id,notnull,type:uuid" json:"template_id"`
	CachedTitle        *string    `bun:"cached_title" json:"cached_title,omitempty"`
	CachedThumbnailURL *string    `bun:"cached_thumbnail_url" json:"cached_thumbnail_url,omitempty"`
	CachedData         *string    `bun:"cached_data" json:"cached_data,omitempty"`
	CacheUpdatedAt     *time.Time `bun:"cache_updated_at,nullzero" json:"cache_updated_at,omitempty"`
	CreatedAt          time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	CreatedBy          *string    `bun:"created_by" json:"created_by,omitempty"`
}

// Clone returns a deep copy so cached references stay immutable.
func (r *Reference) Clone() *Reference {
	if r == nil {
		return nil
	}
	cloned := *r
	cloned.CachedTitle = clonePtr(r.CachedTitle)
	cloned.CachedThumbnailURL = clonePtr(r.CachedThumbnailURL)
	cloned.CachedData = clonePtr(r.CachedData)
	cloned.CreatedBy = clonePtr(r.CreatedBy)
	if r.CacheUpdatedAt != nil {
		at := *r.CacheUpdatedAt
		cloned.CacheUpdatedAt = &at
	}
	return &cloned
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
