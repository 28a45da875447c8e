package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// requireDataset answers 503 until the dataset has loaded.
func requireDataset(api *RestAPI, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !api.Ready() {
			api.datasetUnavailableResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetRoutes registers the JSON API, chart and operational endpoints.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/dimensions.json", requireDataset(api, validateAPIKey(api, api.dimensionsHandler)))
	router.Handler(http.MethodGet, "/api/totals.json", requireDataset(api, validateAPIKey(api, api.totalsHandler)))
	router.Handler(http.MethodGet, "/api/chart/:format", requireDataset(api, validateAPIKey(api, api.chartHandler)))
	router.Handler(http.MethodGet, "/api/mortality.json", validateAPIKey(api, api.mortalityHandler))
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	if api.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	}

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.HandleMethodNotAllowed = false
}

// Handler wraps h in the middleware chain shared by every endpoint.
func (api *RestAPI) Handler(h http.Handler) http.Handler {
	h = CompressionMiddleware(h)
	h = api.rateLimiter.Handler(h)
	h = NewRequestLoggingMiddleware(api.Logger, api.Metrics)(h)
	return api.WithSecurityHeaders(h)
}
