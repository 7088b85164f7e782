package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/endpoints"
	"github.com/goliatone/go-external-content/graph"
	"github.com/goliatone/go-external-content/references"
	"github.com/goliatone/go-external-content/templates"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := mapError(err)
	writeJSON(w, r, status, payload)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusBadRequest, errorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var templateNotFound *templates.NotFoundError
	var endpointNotFound *endpoints.NotFoundError
	var referenceNotFound *references.NotFoundError
	var contentNotFound *content.NotFoundError
	if errors.As(err, &templateNotFound) ||
		errors.As(err, &endpointNotFound) ||
		errors.As(err, &referenceNotFound) ||
		errors.As(err, &contentNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, endpoints.ErrNoDefault) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, templates.ErrContentTypeNameExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, templates.ErrContentTypeNameRequired) ||
		errors.Is(err, templates.ErrDisplayNameRequired) ||
		errors.Is(err, templates.ErrEditModeTemplateRequired) ||
		errors.Is(err, templates.ErrRenderTemplateRequired) ||
		errors.Is(err, templates.ErrQueryRequired) ||
		errors.Is(err, templates.ErrDefinitionIDRequired) ||
		errors.Is(err, endpoints.ErrNameRequired) ||
		errors.Is(err, endpoints.ErrURLRequired) ||
		errors.Is(err, endpoints.ErrEndpointIDRequired) ||
		errors.Is(err, references.ErrExternalIDRequired) ||
		errors.Is(err, references.ErrTemplateIDRequired) ||
		errors.Is(err, references.ErrReferenceIDRequired) ||
		errors.Is(err, content.ErrTemplateIDRequired) ||
		errors.Is(err, content.ErrExternalIDRequired) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		}
	}

	if errors.Is(err, graph.ErrNoEndpoint) {
		return http.StatusServiceUnavailable, errorResponse{
			Error:   "no_endpoint",
			Message: err.Error(),
		}
	}

	if errors.Is(err, graph.ErrRemote) {
		return http.StatusBadGateway, errorResponse{
			Error:   "remote_error",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUIDParam(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
