package restapi

import (
	"net/http"
	"strconv"

	"github.com/feLLpe04/Project3/internal/models"
	"github.com/feLLpe04/Project3/internal/store"
	"github.com/feLLpe04/Project3/internal/utils"
)

const maxMortalityRows = 1000

// mortalityHandler lists imported rows filtered by ?year= and ?cause_group=.
func (api *RestAPI) mortalityHandler(w http.ResponseWriter, r *http.Request) {
	if api.Store == nil {
		api.sendNotFound(w, r)
		return
	}

	params := r.URL.Query()
	year, hasYear, fieldErrors := utils.ParseIntParam(params, "year", nil)
	causeGroup := utils.SanitizeInput(params.Get("cause_group"))
	if err := utils.ValidateCauseGroup(causeGroup); err != nil {
		fieldErrors["cause_group"] = append(fieldErrors["cause_group"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	filter := store.Filter{CauseGroup: causeGroup, Limit: maxMortalityRows + 1}
	if hasYear {
		filter.Year = strconv.Itoa(year)
	}

	records, err := api.Store.QueryMortality(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	limitExceeded := len(records) > maxMortalityRows
	if limitExceeded {
		records = records[:maxMortalityRows]
	}

	response := models.NewLimitedListResponse(records, api.datasetReferences(), limitExceeded)
	api.sendResponse(w, r, response)
}
