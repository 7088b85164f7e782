package endpoints

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Endpoint describes one remote graph API the module can query: its URL plus
// the credentials used to authenticate. At most one endpoint is marked as the
// default; lookups without an explicit endpoint id go there.
type Endpoint struct {
	bun.BaseModel `bun:"table:graph_endpoint_configurations,alias:gec"`

	ID         uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Name       string     `bun:"name,notnull" json:"name"`
	URL        string     `bun:"endpoint_url,notnull" json:"endpoint_url"`
	SingleKey  *string    `bun:"single_key" json:"single_key,omitempty"`
	AppKey     *string    `bun:"app_key" json:"app_key,omitempty"`
	AppSecret  *string    `bun:"app_secret" json:"app_secret,omitempty"`
	IsDefault  bool       `bun:"is_default,notnull,default:false" json:"is_default"`
	IsActive   bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	CreatedBy  *string    `bun:"created_by" json:"created_by,omitempty"`
	ModifiedAt *time.Time `bun:"modified_at,nullzero" json:"modified_at,omitempty"`
	ModifiedBy *string    `bun:"modified_by" json:"modified_by,omitempty"`
}

// Clone returns a deep copy so cached endpoints stay immutable.
func (e *Endpoint) Clone() *Endpoint {
	if e == nil {
		return nil
	}
	cloned := *e
	cloned.SingleKey = clonePtr(e.SingleKey)
	cloned.AppKey = clonePtr(e.AppKey)
	cloned.AppSecret = clonePtr(e.AppSecret)
	cloned.CreatedBy = clonePtr(e.CreatedBy)
	cloned.ModifiedBy = clonePtr(e.ModifiedBy)
	if e.ModifiedAt != nil {
		at := *e.ModifiedAt
		cloned.ModifiedAt = &at
	}
	return &cloned
}

// HasSingleKey reports whether the endpoint authenticates with a single key.
func (e *Endpoint) HasSingleKey() bool {
	return e.SingleKey != nil && strings.TrimSpace(*e.SingleKey) != ""
}

// HasAppCredentials reports whether the endpoint authenticates with an
// application key and secret pair.
func (e *Endpoint) HasAppCredentials() bool {
	return e.AppKey != nil && strings.TrimSpace(*e.AppKey) != "" &&
		e.AppSecret != nil && strings.TrimSpace(*e.AppSecret) != ""
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
