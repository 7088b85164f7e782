package templates

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Definition represents a rendering template configured for one external
// content type: the graph query that fetches matching items, the two
// independent template strings (editor preview and public rendering), and
// the optional field-name overrides used to resolve title and thumbnail.
type Definition struct {
	bun.BaseModel `bun:"table:external_content_templates,alias:ect"`

	ID                 uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	ContentTypeName    string     `bun:"content_type_name,notnull" json:"content_type_name"`
	DisplayName        string     `bun:"display_name,notnull" json:"display_name"`
	Description        *string    `bun:"description" json:"description,omitempty"`
	EditModeTemplate   string     `bun:"edit_mode_template,notnull" json:"edit_mode_template"`
	RenderTemplate     string     `bun:"render_template,notnull" json:"render_template"`
	Query              string     `bun:"query,notnull" json:"query"`
	QueryVariables     *string    `bun:"query_variables" json:"query_variables,omitempty"`
	IconClass          string     `bun:"icon_class" json:"icon_class,omitempty"`
	TitleFieldName     *string    `bun:"title_field_name" json:"title_field_name,omitempty"`
	ThumbnailFieldName *string    `bun:"thumbnail_field_name" json:"thumbnail_field_name,omitempty"`
	IsActive           bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	SortOrder          int        `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt          time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	CreatedBy          *string    `bun:"created_by" json:"created_by,omitempty"`
	ModifiedAt         *time.Time `bun:"modified_at,nullzero" json:"modified_at,omitempty"`
	ModifiedBy         *string    `bun:"modified_by" json:"modified_by,omitempty"`
}

// Clone returns a deep copy so cached definitions stay immutable.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	cloned := *d
	cloned.Description = clonePtr(d.Description)
	cloned.QueryVariables = clonePtr(d.QueryVariables)
	cloned.TitleFieldName = clonePtr(d.TitleFieldName)
	cloned.ThumbnailFieldName = clonePtr(d.ThumbnailFieldName)
	cloned.CreatedBy = clonePtr(d.CreatedBy)
	cloned.ModifiedBy = clonePtr(d.ModifiedBy)
	if d.ModifiedAt != nil {
		at := *d.ModifiedAt
		cloned.ModifiedAt = &at
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
