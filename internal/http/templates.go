package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-external-content/templates"
)

type templatePayload struct {
	ContentTypeName    string  `json:"content_type_name"`
	DisplayName        string  `json:"display_name"`
	Description        *string `json:"description,omitempty"`
	EditModeTemplate   string  `json:"edit_mode_template"`
	RenderTemplate     string  `json:"render_template"`
	Query              string  `json:"query"`
	QueryVariables     *string `json:"query_variables,omitempty"`
	IconClass          string  `json:"icon_class,omitempty"`
	TitleFieldName     *string `json:"title_field_name,omitempty"`
	ThumbnailFieldName *string `json:"thumbnail_field_name,omitempty"`
	IsActive           bool    `json:"is_active"`
	SortOrder          int     `json:"sort_order"`
	Actor              string  `json:"actor,omitempty"`
}

type validatePayload struct {
	Template string `json:"template"`
}

type previewPayload struct {
	Template   string `json:"template"`
	SampleData string `json:"sample_data"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

func (api *API) templateRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", api.listTemplates)
	r.Post("/", api.createTemplate)
	r.Get("/{id}", api.getTemplate)
	r.Put("/{id}", api.updateTemplate)
	r.Delete("/{id}", api.deleteTemplate)

	if api.rendering != nil {
		r.Post("/validate", api.validateTemplate)
		r.Post("/preview", api.previewTemplate)
	}

	return r
}

func (api *API) listTemplates(w http.ResponseWriter, r *http.Request) {
	definitions, err := api.templates.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, definitions)
}

func (api *API) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}

	definition, err := api.templates.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, definition)
}

func (api *API) createTemplate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	definition, err := api.templates.Create(r.Context(), templates.CreateDefinitionRequest{
		ContentTypeName:    payload.ContentTypeName,
		DisplayName:        payload.DisplayName,
		Description:        payload.Description,
		EditModeTemplate:   payload.EditModeTemplate,
		RenderTemplate:     payload.RenderTemplate,
		Query:              payload.Query,
		QueryVariables:     payload.QueryVariables,
		IconClass:          payload.IconClass,
		TitleFieldName:     payload.TitleFieldName,
		ThumbnailFieldName: payload.ThumbnailFieldName,
		IsActive:           payload.IsActive,
		SortOrder:          payload.SortOrder,
		Author:             payload.Actor,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, definition)
}

func (api *API) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}

	var payload templatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	definition, err := api.templates.Update(r.Context(), templates.UpdateDefinitionRequest{
		ID:                 id,
		ContentTypeName:    payload.ContentTypeName,
		DisplayName:        payload.DisplayName,
		Description:        payload.Description,
		EditModeTemplate:   payload.EditModeTemplate,
		RenderTemplate:     payload.RenderTemplate,
		Query:              payload.Query,
		QueryVariables:     payload.QueryVariables,
		IconClass:          payload.IconClass,
		TitleFieldName:     payload.TitleFieldName,
		ThumbnailFieldName: payload.ThumbnailFieldName,
		IsActive:           payload.IsActive,
		SortOrder:          payload.SortOrder,
		Editor:             payload.Actor,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, definition)
}

func (api *API) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}

	if err := api.templates.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) validateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload validatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	result := api.rendering.Validate(payload.Template)
	writeJSON(w, r, http.StatusOK, result)
}

func (api *API) previewTemplate(w http.ResponseWriter, r *http.Request) {
	var payload previewPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	html := api.rendering.Preview(payload.Template, payload.SampleData)
	writeJSON(w, r, http.StatusOK, previewResponse{HTML: html})
}
