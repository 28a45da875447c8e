package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/models"
)

// errorEnvelope is the version 1 error body shared by the failure responses.
type errorEnvelope struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) sendError(w http.ResponseWriter, status int, text string) {
	response := errorEnvelope{
		Code:        status,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     1,
	}

	setJSONResponseType(&w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode error response", err,
			slog.Int("status", status),
			slog.String("component", "rest_api"))
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response with the required format
// for invalid API key errors
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("component", "rest_api"))
	api.sendError(w, http.StatusInternalServerError, "internal server error")
}

// datasetUnavailableResponse is sent while the dataset failed to load.
func (api *RestAPI) datasetUnavailableResponse(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, http.StatusServiceUnavailable, "dataset not loaded")
}

// noChartDataResponse is sent when an empty dataset leaves nothing to draw.
func (api *RestAPI) noChartDataResponse(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, http.StatusNotFound, "no chart data")
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode validation error response", err,
			slog.String("component", "rest_api"))
	}
}
