package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	Registry       *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	chartRenders   *prometheus.CounterVec
	datasetRecords prometheus.Gauge
	datasetReady   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mortality",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"path", "status"}),
		chartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mortality",
			Name:      "chart_renders_total",
			Help:      "Pie charts drawn, by surface.",
		}, []string{"surface"}),
		datasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mortality",
			Name:      "dataset_records",
			Help:      "Records in the loaded dataset.",
		}),
		datasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mortality",
			Name:      "dataset_ready",
			Help:      "1 when the dataset loaded successfully, else 0.",
		}),
	}
	m.Registry.MustRegister(m.httpRequests, m.chartRenders, m.datasetRecords, m.datasetReady)
	return m
}

// ChartRendered implements chart.RenderObserver.
func (m *Metrics) ChartRendered(surface string) {
	m.chartRenders.WithLabelValues(surface).Inc()
}

// ChartRendersCounter exposes the render counter of one surface.
func (m *Metrics) ChartRendersCounter(surface string) prometheus.Counter {
	return m.chartRenders.WithLabelValues(surface)
}

func (m *Metrics) ObserveRequest(path string, status int) {
	m.httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
}

// SetDataset records the size of the loaded dataset; ready is false after a
// failed load.
func (m *Metrics) SetDataset(records int, ready bool) {
	m.datasetRecords.Set(float64(records))
	if ready {
		m.datasetReady.Set(1)
	} else {
		m.datasetReady.Set(0)
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
