package restapi

import (
	"net/http"

	"github.com/feLLpe04/Project3/internal/aggregate"
	"github.com/feLLpe04/Project3/internal/models"
	"github.com/feLLpe04/Project3/internal/utils"
)

func (api *RestAPI) totalsHandler(w http.ResponseWriter, r *http.Request) {
	selection, fieldErrors := utils.ParseSelectionParams(r.URL.Query(), api.Dataset.Dimensions)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	summary := aggregate.Summarize(api.Dataset.Records, selection)
	entry := models.NewTotalsEntry(selection, summary)

	response := models.NewEntryResponse(entry, api.datasetReferences())
	api.sendResponse(w, r, response)
}
