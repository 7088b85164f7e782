package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/graph"
)

type searchResponse struct {
	Items        []itemResponse `json:"items"`
	TotalCount   int            `json:"total_count"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	HasMorePages bool           `json:"has_more_pages"`
}

type itemResponse struct {
	ID           string                 `json:"id"`
	ContentType  string                 `json:"content_type"`
	Title        string                 `json:"title"`
	ThumbnailURL string                 `json:"thumbnail_url,omitempty"`
	Data         map[string]graph.Value `json:"data,omitempty"`
}

type renderResponse struct {
	HTML string `json:"html"`
}

func (api *API) contentRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{templateID}/search", api.searchContent)
	r.Get("/{templateID}/items/{externalID}", api.getContentItem)

	if api.rendering != nil {
		r.Get("/{templateID}/items/{externalID}/render", api.renderContentItem)
	}

	return r
}

func (api *API) searchContent(w http.ResponseWriter, r *http.Request) {
	templateID, ok := parseUUIDParam(chi.URLParam(r, "templateID"))
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}

	query := r.URL.Query()
	result, err := api.content.Search(r.Context(), content.SearchRequest{
		TemplateID: templateID,
		Query:      query.Get("q"),
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "page_size", 0),
		Locale:     query.Get("locale"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	payload := searchResponse{
		Items:        make([]itemResponse, 0, len(result.Items)),
		TotalCount:   result.TotalCount,
		Page:         result.Page,
		PageSize:     result.PageSize,
		HasMorePages: result.HasMorePages(),
	}
	for _, item := range result.Items {
		payload.Items = append(payload.Items, itemResponse{
			ID:           item.ID,
			ContentType:  item.ContentType,
			Title:        item.Title,
			ThumbnailURL: item.ThumbnailURL,
		})
	}
	writeJSON(w, r, http.StatusOK, payload)
}

func (api *API) getContentItem(w http.ResponseWriter, r *http.Request) {
	templateID, ok := parseUUIDParam(chi.URLParam(r, "templateID"))
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}
	externalID := chi.URLParam(r, "externalID")

	item, err := api.content.GetByID(r.Context(), templateID, externalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, itemResponse{
		ID:           item.ID,
		ContentType:  item.ContentType,
		Title:        item.Title,
		ThumbnailURL: item.ThumbnailURL,
		Data:         item.Data,
	})
}

func (api *API) renderContentItem(w http.ResponseWriter, r *http.Request) {
	templateID, ok := parseUUIDParam(chi.URLParam(r, "templateID"))
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}
	externalID := chi.URLParam(r, "externalID")

	item, err := api.content.GetByID(r.Context(), templateID, externalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var html string
	switch strings.ToLower(r.URL.Query().Get("mode")) {
	case "", "public":
		html = api.rendering.RenderPublic(r.Context(), templateID, item)
	case "edit":
		html = api.rendering.RenderEditMode(r.Context(), templateID, item)
	default:
		writeBadRequest(w, r, "invalid render mode")
		return
	}

	writeJSON(w, r, http.StatusOK, renderResponse{HTML: html})
}
