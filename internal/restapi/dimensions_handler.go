package restapi

import (
	"net/http"

	"github.com/feLLpe04/Project3/internal/models"
)

func (api *RestAPI) dimensionsHandler(w http.ResponseWriter, r *http.Request) {
	dims := api.Dataset.Dimensions

	entry := models.DimensionsEntry{
		Years:  dims.Years,
		Causes: dims.Causes,
	}
	if def, ok := dims.DefaultSelection(); ok {
		entry.DefaultYear = def.Year
		entry.DefaultCause = def.Cause
	}

	response := models.NewEntryResponse(entry, api.datasetReferences())
	api.sendResponse(w, r, response)
}
