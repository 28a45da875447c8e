package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"

	"github.com/feLLpe04/Project3/internal/app"
	"github.com/feLLpe04/Project3/internal/appconf"
	"github.com/feLLpe04/Project3/internal/dataset"
	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/metrics"
	"github.com/feLLpe04/Project3/internal/restapi"
	"github.com/feLLpe04/Project3/internal/store"
	"github.com/feLLpe04/Project3/internal/webui"
)

func newServeCmd(flags *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset once and serve the dashboard and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, os.Stdout)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := buildApplication(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if application.Store != nil {
				defer logging.SafeCloseWithLogging(application.Store, logger, "store")
			}

			return serve(ctx, application)
		},
	}
}

func datasetConfig(cfg appconf.Config) dataset.Config {
	return dataset.Config{
		Source:  cfg.DatasetSource,
		Timeout: cfg.DatasetTimeout,
		S3: dataset.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		},
	}
}

// buildApplication loads the dataset and opens the optional store. A failed
// load is logged and leaves the application unready rather than failing.
func buildApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	application := &app.Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	ds, err := dataset.NewLoader(datasetConfig(cfg), logger).Load(ctx)
	if err != nil {
		logging.LogError(logger, "dataset_load_failed", err,
			slog.String("source", cfg.DatasetSource),
			slog.String("component", "dataset_loader"))
		application.LoadErr = err
		application.Metrics.SetDataset(0, false)
	} else {
		application.Dataset = ds
		application.Metrics.SetDataset(len(ds.Records), true)
	}

	if cfg.DBPath != "" {
		client, err := store.Open(cfg.DBPath, logger)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		if ds != nil {
			if err := client.ImportRecords(ctx, ds.Records); err != nil {
				logging.SafeCloseWithLogging(client, logger, "store")
				return nil, fmt.Errorf("import dataset: %w", err)
			}
		}
		application.Store = client
	}

	return application, nil
}

func newHandler(application *app.Application) (http.Handler, func()) {
	router := httprouter.New()
	api := restapi.NewRestAPI(application)
	api.SetRoutes(router)
	webui.New(application).SetWebUIRoutes(router)
	return api.Handler(router), api.Close
}

func serve(ctx context.Context, application *app.Application) error {
	handler, closeAPI := newHandler(application)
	defer closeAPI()

	logger := application.Logger
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogOperation(logger, "server_starting",
			slog.String("addr", srv.Addr),
			slog.String("env", application.Config.Env.String()),
			slog.Bool("dataset_ready", application.Ready()),
			slog.Bool("api_keys_enabled", application.Config.APIKeysEnabled()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.LogOperation(logger, "server_stopping", slog.String("addr", srv.Addr))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
