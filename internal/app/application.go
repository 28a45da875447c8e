package app

import (
	"log/slog"

	"github.com/feLLpe04/Project3/internal/appconf"
	"github.com/feLLpe04/Project3/internal/dataset"
	"github.com/feLLpe04/Project3/internal/metrics"
	"github.com/feLLpe04/Project3/internal/store"
)

// Application holds the dependencies shared by the HTTP handlers, the web UI
// and the middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Dataset is nil when the startup load failed; the dashboard is then unready.
	Dataset *dataset.Dataset
	// LoadErr is the startup load failure, if any.
	LoadErr error
	// Store is nil unless a database path was configured.
	Store *store.Client
}

// Ready reports whether the dataset loaded.
func (app *Application) Ready() bool {
	return app.Dataset != nil
}
