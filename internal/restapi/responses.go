package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/feLLpe04/Project3/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := models.ResponseModel{
		Code:        http.StatusNotFound,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "resource not found",
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

// datasetReferences describes the loaded dataset for response references.
func (api *RestAPI) datasetReferences() models.ReferencesModel {
	ds := api.Dataset
	if ds == nil {
		return models.NewEmptyReferences()
	}
	return models.NewDatasetReferences(ds.Source, len(ds.Records), ds.LoadedAt)
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
