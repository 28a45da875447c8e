package dashboard

import (
	"log/slog"

	"github.com/feLLpe04/Project3/internal/aggregate"
	"github.com/feLLpe04/Project3/internal/chart"
	"github.com/feLLpe04/Project3/internal/dataset"
	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/mortality"
)

// Element ids of the dashboard controls and drawing surface.
const (
	YearSelectorID  = "yearDropdown"
	CauseSelectorID = "causeDropdown"
	ChartSurfaceID  = "pieChart"
)

// Dashboard binds the two selectors to the aggregate engine and the chart
// presenter. It is driven from a single goroutine: every change event runs
// filter, aggregate and render to completion before returning.
type Dashboard struct {
	data      *dataset.Dataset
	presenter *chart.Presenter
	years     Selector
	causes    Selector
	logger    *slog.Logger

	selection mortality.Selection
	summary   aggregate.Summary
	spec      chart.Spec
	handle    chart.Handle
	rendered  bool
	lastErr   error
}

// New creates an unbound dashboard. data may be nil when the dataset failed
// to load; such a dashboard never populates controls or renders.
func New(data *dataset.Dataset, presenter *chart.Presenter, years, causes Selector, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		data:      data,
		presenter: presenter,
		years:     years,
		causes:    causes,
		logger:    logger,
	}
}

// Ready reports whether a dataset is available.
func (d *Dashboard) Ready() bool {
	return d.data != nil
}

// Bind populates the selectors, subscribes to their change events and draws
// the default view when the dataset has at least one year.
func (d *Dashboard) Bind() error {
	if d.data == nil {
		return nil
	}
	dims := d.data.Dimensions

	d.years.SetOptions(optionsFor(dims.Years))
	d.causes.SetOptions(optionsFor(dims.Causes))

	d.years.OnChange(d.onSelectionChanged)
	d.causes.OnChange(d.onSelectionChanged)

	initial, ok := dims.DefaultSelection()
	if !ok {
		return nil
	}
	return d.update(initial)
}

// onSelectionChanged reads both selectors and redraws the chart.
func (d *Dashboard) onSelectionChanged() {
	selection := mortality.Selection{Year: d.years.Value(), Cause: d.causes.Value()}
	if err := d.update(selection); err != nil {
		logging.LogError(d.logger, "chart_update_failed", err,
			slog.String("year", selection.Year),
			slog.String("cause", selection.Cause),
			slog.String("component", "control_binder"))
	}
}

func (d *Dashboard) update(selection mortality.Selection) error {
	summary := aggregate.Summarize(d.data.Records, selection)

	d.logger.Debug("selection_aggregated",
		slog.String("year", selection.Year),
		slog.String("cause", selection.Cause),
		slog.Int("matched_records", summary.MatchedRecords),
		slog.Float64("male", summary.Totals.Male),
		slog.Float64("female", summary.Totals.Female),
		slog.Float64("undefined", summary.Totals.Undefined),
		slog.Float64("dropped_deaths", summary.DroppedDeaths),
		slog.String("component", "control_binder"))

	prev := d.handle
	d.handle = nil
	handle, err := d.presenter.Render(prev, summary.Totals)

	d.selection = selection
	d.summary = summary
	d.spec = chart.NewSpec(summary.Totals)
	d.lastErr = err
	if err != nil {
		d.rendered = false
		return err
	}
	d.handle = handle
	d.rendered = true
	return nil
}

// Rendered reports whether the chart currently reflects Selection.
func (d *Dashboard) Rendered() bool {
	return d.rendered
}

func (d *Dashboard) Selection() mortality.Selection {
	return d.selection
}

func (d *Dashboard) Totals() aggregate.Totals {
	return d.summary.Totals
}

func (d *Dashboard) Summary() aggregate.Summary {
	return d.summary
}

func (d *Dashboard) Spec() chart.Spec {
	return d.spec
}

// Handle is the live chart instance, nil before the first render.
func (d *Dashboard) Handle() chart.Handle {
	return d.handle
}

// Err is the error of the most recent render, if any.
func (d *Dashboard) Err() error {
	return d.lastErr
}

// Close destroys the live chart.
func (d *Dashboard) Close() error {
	if d.handle == nil {
		return nil
	}
	err := d.handle.Destroy()
	d.handle = nil
	d.rendered = false
	return err
}

func optionsFor(values []string) []Option {
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Value: v, Text: v})
	}
	return options
}
