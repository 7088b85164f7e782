package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-external-content/references"
)

type referencePayload struct {
	ExternalID   string `json:"external_id"`
	TemplateID   string `json:"template_id"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Data         string `json:"data,omitempty"`
	Actor        string `json:"actor,omitempty"`
}

func (api *API) referenceRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", api.createReference)
	r.Get("/{id}", api.getReference)
	r.Delete("/{id}", api.deleteReference)
	r.Get("/template/{templateID}", api.listReferencesByTemplate)

	return r
}

func (api *API) createReference(w http.ResponseWriter, r *http.Request) {
	var payload referencePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	templateID, ok := parseUUIDParam(payload.TemplateID)
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}

	reference, err := api.references.Create(r.Context(), references.CreateReferenceRequest{
		ExternalID: payload.ExternalID,
		TemplateID: templateID,
		Snapshot: references.Snapshot{
			Title:        payload.Title,
			ThumbnailURL: payload.ThumbnailURL,
			Data:         payload.Data,
		},
		Author: payload.Actor,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, reference)
}

func (api *API) getReference(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid reference id")
		return
	}

	reference, err := api.references.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reference)
}

func (api *API) deleteReference(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid reference id")
		return
	}

	if err := api.references.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) listReferencesByTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, ok := parseUUIDParam(chi.URLParam(r, "templateID"))
	if !ok {
		writeBadRequest(w, r, "invalid template id")
		return
	}

	listed, err := api.references.ListByTemplate(r.Context(), templateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, listed)
}
