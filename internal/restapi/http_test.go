package restapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"github.com/feLLpe04/Project3/internal/app"
	"github.com/feLLpe04/Project3/internal/appconf"
	"github.com/feLLpe04/Project3/internal/dataset"
	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/metrics"
	"github.com/feLLpe04/Project3/internal/models"
	"github.com/feLLpe04/Project3/internal/mortality"
)

var testDatasetPath = filepath.Join("../../testdata", "merged_data.json")

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// createTestApi creates a RestAPI over the fixture dataset.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	config := appconf.DefaultConfig()
	config.Env = appconf.Test
	config.DatasetSource = testDatasetPath
	config.RateLimit = -1

	ds, err := dataset.NewLoader(dataset.Config{Source: testDatasetPath}, testLogger()).Load(context.Background())
	require.NoError(t, err)

	api := NewRestAPI(&app.Application{
		Config:  config,
		Logger:  testLogger(),
		Metrics: metrics.New(),
		Dataset: ds,
	})
	t.Cleanup(api.Close)
	return api
}

// createEmptyApi creates a RestAPI over a dataset that loaded with no records.
func createEmptyApi(t *testing.T) *RestAPI {
	t.Helper()

	config := appconf.DefaultConfig()
	config.Env = appconf.Test
	config.RateLimit = -1

	api := NewRestAPI(&app.Application{
		Config:  config,
		Logger:  testLogger(),
		Metrics: metrics.New(),
		Dataset: dataset.NewDataset("empty.json", []mortality.Record{}),
	})
	t.Cleanup(api.Close)
	return api
}

// createUnreadyApi creates a RestAPI whose dataset failed to load.
func createUnreadyApi(t *testing.T) *RestAPI {
	t.Helper()

	config := appconf.DefaultConfig()
	config.Env = appconf.Test
	config.DatasetSource = "missing.json"
	config.RateLimit = -1

	_, err := dataset.NewLoader(dataset.Config{Source: "missing.json"}, testLogger()).Load(context.Background())
	require.Error(t, err)

	api := NewRestAPI(&app.Application{
		Config:  config,
		Logger:  testLogger(),
		Metrics: metrics.New(),
		LoadErr: err,
	})
	t.Cleanup(api.Close)
	return api
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(api.Handler(router))
	t.Cleanup(server.Close)
	return server
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := newTestServer(t, api)
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// entryOf returns data.entry of a decoded envelope.
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}
