package restapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/feLLpe04/Project3/internal/chart"
	"github.com/feLLpe04/Project3/internal/dashboard"
	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/utils"
)

// chartHandler renders the pie chart for ?year=&cause= as an SVG or PNG image.
func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	format, err := chart.ParseFormat(utils.ExtractParam(r, "format"))
	if errors.Is(err, chart.ErrUnknownFormat) {
		api.sendNotFound(w, r)
		return
	}

	selection, fieldErrors := utils.ParseSelectionParams(r.URL.Query(), api.Dataset.Dimensions)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	// No year was asked for and the dataset has none to default to.
	if selection.Year == "" {
		api.noChartDataResponse(w, r)
		return
	}

	surface := chart.NewImageSurface(dashboard.ChartSurfaceID, format)
	presenter := chart.NewPresenter(surface)
	if api.Metrics != nil {
		presenter.WithObserver(api.Metrics)
	}

	years := dashboard.NewDropdown(dashboard.YearSelectorID)
	causes := dashboard.NewDropdown(dashboard.CauseSelectorID)
	board := dashboard.New(api.Dataset, presenter, years, causes, logging.FromContext(r.Context()))
	defer logging.HandleDeferredError(&err, board.Close, api.Logger, "chart_handler_close")

	if err = board.Bind(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !years.Selected(selection.Year) || !causes.Selected(selection.Cause) {
		// Both values are set before the single change event so the chart is
		// drawn once for the requested pair.
		years.SetValue(selection.Year)
		causes.Select(selection.Cause)
	}
	if err = board.Err(); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	img := surface.Current()
	if img == nil {
		api.serverErrorResponse(w, r, errors.New("chart was not rendered"))
		return
	}

	w.Header().Set("Content-Type", img.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Bytes())))
	w.Header().Set("Cache-Control", "no-cache")
	if _, werr := w.Write(img.Bytes()); werr != nil {
		api.Logger.Warn("failed to write chart image",
			slog.String("error", werr.Error()),
			slog.String("component", "rest_api"))
	}
}
