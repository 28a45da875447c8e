package webui

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/feLLpe04/Project3/internal/chart"
	"github.com/feLLpe04/Project3/internal/dashboard"
	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/mortality"
	"github.com/feLLpe04/Project3/internal/utils"
)

const pageTitle = "Mortality by sex"

type optionView struct {
	Value    string
	Text     string
	Selected bool
}

type selectorView struct {
	ID      string
	Options []optionView
}

type dashboardPage struct {
	Title    string
	Ready    bool
	Year     selectorView
	Cause    selectorView
	ChartID  string
	Chart    template.HTML
	Tooltips []string
}

func selectorViewOf(d *dashboard.Dropdown) selectorView {
	view := selectorView{ID: d.ID(), Options: make([]optionView, 0, len(d.Options()))}
	for _, o := range d.Options() {
		view.Options = append(view.Options, optionView{Value: o.Value, Text: o.Text, Selected: d.Selected(o.Value)})
	}
	return view
}

// dashboardHandler binds a fresh dashboard to the dataset and replays the
// ?year=&cause= selection submitted by the page's form.
func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{Title: pageTitle, Ready: webUI.Ready(), ChartID: dashboard.ChartSurfaceID}
	if !page.Ready {
		webUI.renderPage(w, r, http.StatusServiceUnavailable, page)
		return
	}

	params := r.URL.Query()
	rawYear := params.Get("year")
	cause := params.Get("cause")
	if utils.ValidateYear(rawYear) != nil || utils.ValidateCause(cause) != nil {
		http.Error(w, "invalid selection", http.StatusBadRequest)
		return
	}
	year := mortality.NormalizeYear(utils.SanitizeInput(rawYear))

	surface := chart.NewImageSurface(dashboard.ChartSurfaceID, chart.FormatSVG)
	presenter := chart.NewPresenter(surface)
	if webUI.Metrics != nil {
		presenter.WithObserver(webUI.Metrics)
	}
	years := dashboard.NewDropdown(dashboard.YearSelectorID)
	causes := dashboard.NewDropdown(dashboard.CauseSelectorID)

	board := dashboard.New(webUI.Dataset, presenter, years, causes, logging.FromContext(r.Context()))
	defer logging.SafeCloseWithLogging(closerFunc(board.Close), webUI.Logger, "dashboard_close")

	if err := board.Bind(); err != nil {
		webUI.serverError(w, r, err)
		return
	}

	if year != "" && !years.Selected(year) {
		years.Select(year)
	}
	if cause != "" && !causes.Selected(cause) {
		causes.Select(cause)
	}
	if err := board.Err(); err != nil {
		webUI.serverError(w, r, err)
		return
	}

	page.Year = selectorViewOf(years)
	page.Cause = selectorViewOf(causes)
	if img := surface.Current(); img != nil {
		// The SVG is produced by go-chart from numeric totals and fixed labels.
		page.Chart = template.HTML(img.Bytes())
		page.Tooltips = board.Spec().Tooltips
	}

	webUI.renderPage(w, r, http.StatusOK, page)
}

func (webUI *WebUI) renderPage(w http.ResponseWriter, r *http.Request, status int, page dashboardPage) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "dashboard.html", page); err != nil {
		webUI.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (webUI *WebUI) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "dashboard page failed", err,
		slog.String("path", r.URL.Path),
		slog.String("component", "webui"))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
