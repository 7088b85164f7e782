package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-external-content/endpoints"
)

type endpointPayload struct {
	Name      string  `json:"name"`
	URL       string  `json:"endpoint_url"`
	SingleKey *string `json:"single_key,omitempty"`
	AppKey    *string `json:"app_key,omitempty"`
	AppSecret *string `json:"app_secret,omitempty"`
	IsDefault bool    `json:"is_default"`
	IsActive  bool    `json:"is_active"`
	Actor     string  `json:"actor,omitempty"`
}

func (api *API) endpointRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", api.listEndpoints)
	r.Post("/", api.createEndpoint)
	r.Get("/default", api.getDefaultEndpoint)
	r.Get("/{id}", api.getEndpoint)
	r.Put("/{id}", api.updateEndpoint)
	r.Delete("/{id}", api.deleteEndpoint)
	r.Post("/{id}/default", api.setDefaultEndpoint)

	return r
}

func (api *API) listEndpoints(w http.ResponseWriter, r *http.Request) {
	configured, err := api.endpoints.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, configured)
}

func (api *API) getDefaultEndpoint(w http.ResponseWriter, r *http.Request) {
	endpoint, err := api.endpoints.GetDefault(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, endpoint)
}

func (api *API) getEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid endpoint id")
		return
	}

	endpoint, err := api.endpoints.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, endpoint)
}

func (api *API) createEndpoint(w http.ResponseWriter, r *http.Request) {
	var payload endpointPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	endpoint, err := api.endpoints.Create(r.Context(), endpoints.CreateEndpointRequest{
		Name:      payload.Name,
		URL:       payload.URL,
		SingleKey: payload.SingleKey,
		AppKey:    payload.AppKey,
		AppSecret: payload.AppSecret,
		IsDefault: payload.IsDefault,
		IsActive:  payload.IsActive,
		Author:    payload.Actor,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, endpoint)
}

func (api *API) updateEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid endpoint id")
		return
	}

	var payload endpointPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	endpoint, err := api.endpoints.Update(r.Context(), endpoints.UpdateEndpointRequest{
		ID:        id,
		Name:      payload.Name,
		URL:       payload.URL,
		SingleKey: payload.SingleKey,
		AppKey:    payload.AppKey,
		AppSecret: payload.AppSecret,
		IsDefault: payload.IsDefault,
		IsActive:  payload.IsActive,
		Editor:    payload.Actor,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, endpoint)
}

func (api *API) deleteEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid endpoint id")
		return
	}

	if err := api.endpoints.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) setDefaultEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeBadRequest(w, r, "invalid endpoint id")
		return
	}

	if err := api.endpoints.SetDefault(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
