package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// PrometheusHooks implements every hook interface on top of Prometheus
// collectors registered on a caller-supplied registerer.
type PrometheusHooks struct {
	loads            *prometheus.CounterVec
	loadedRecords    prometheus.Counter
	builds           *prometheus.CounterVec
	graphVertices    prometheus.Gauge
	graphEdges       prometheus.Gauge
	exports          *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	analyses         *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	analysisInFlight prometheus.Gauge
	cacheOps         *prometheus.CounterVec
	cacheBytes       prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them on reg.
// It panics if any collector is already registered.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_dataset_loads_total",
			Help: "Total number of dataset loads",
		}, []string{"status"}),
		loadedRecords: f.NewCounter(prometheus.CounterOpts{
			Name: "collabgraph_dataset_records_total",
			Help: "Total number of interaction records loaded",
		}),
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_graph_builds_total",
			Help: "Total number of graph builds",
		}, []string{"status"}),
		graphVertices: f.NewGauge(prometheus.GaugeOpts{
			Name: "collabgraph_graph_vertices",
			Help: "Vertex count of the most recently built graph",
		}),
		graphEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "collabgraph_graph_edges",
			Help: "Edge count of the most recently built graph",
		}),
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_exports_total",
			Help: "Total number of graph exports",
		}, []string{"status"}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "collabgraph_pipeline_stage_duration_seconds",
			Help:    "Latency of pipeline stages",
			Buckets: durationBuckets,
		}, []string{"stage"}),
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_analysis_total",
			Help: "Total number of analytics queries",
		}, []string{"op", "status"}),
		analysisDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "collabgraph_analysis_duration_seconds",
			Help:    "Latency of analytics queries",
			Buckets: durationBuckets,
		}, []string{"op"}),
		analysisInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "collabgraph_analysis_in_flight",
			Help: "Analytics queries currently running",
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_cache_operations_total",
			Help: "Cache hits, misses and writes",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "collabgraph_cache_written_bytes_total",
			Help: "Total bytes written to the cache",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_http_requests_total",
			Help: "HTTP requests served",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "collabgraph_http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: durationBuckets,
		}, []string{"method", "route"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *PrometheusHooks) OnLoadStart(context.Context, string) {}

func (p *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, records int, d time.Duration, err error) {
	p.loads.WithLabelValues(status(err)).Inc()
	p.loadedRecords.Add(float64(records))
	p.stageDuration.WithLabelValues("load").Observe(d.Seconds())
}

func (p *PrometheusHooks) OnBuildStart(context.Context, int) {}

func (p *PrometheusHooks) OnBuildComplete(_ context.Context, vertices, edges int, d time.Duration, err error) {
	p.builds.WithLabelValues(status(err)).Inc()
	p.stageDuration.WithLabelValues("build").Observe(d.Seconds())
	if err == nil {
		p.graphVertices.Set(float64(vertices))
		p.graphEdges.Set(float64(edges))
	}
}

func (p *PrometheusHooks) OnExportStart(context.Context, []string) {}

func (p *PrometheusHooks) OnExportComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.exports.WithLabelValues(status(err)).Inc()
	p.stageDuration.WithLabelValues("export").Observe(d.Seconds())
}

func (p *PrometheusHooks) OnAnalysisStart(context.Context, string, int) {
	p.analysisInFlight.Inc()
}

func (p *PrometheusHooks) OnAnalysisComplete(_ context.Context, op string, d time.Duration, err error) {
	p.analysisInFlight.Dec()
	p.analyses.WithLabelValues(op, status(err)).Inc()
	p.analysisDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (p *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
