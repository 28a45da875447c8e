package restapi

import (
	"net/http"

	"github.com/feLLpe04/Project3/internal/models"
)

type healthEntry struct {
	Ready   bool   `json:"ready"`
	Records int    `json:"records"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
}

// healthHandler reports whether the dataset loaded. It needs no API key.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	entry := healthEntry{Ready: api.Ready(), Source: api.Config.DatasetSource}
	if api.Dataset != nil {
		entry.Records = len(api.Dataset.Records)
		entry.Source = api.Dataset.Source
	}
	if api.LoadErr != nil {
		entry.Error = api.LoadErr.Error()
	}

	if !entry.Ready {
		setJSONResponseType(&w)
		w.WriteHeader(http.StatusServiceUnavailable)
		api.sendResponse(w, r, models.NewResponse(http.StatusServiceUnavailable, entry, "dataset not loaded"))
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(entry))
}
