// Package metricsx exposes Prometheus metrics for the HTTP server and the
// frame relay on a private registry.
package metricsx

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hearthhq/hearth/internal/home/relay"
)

const namespace = "hearth"

type Metrics struct {
	registry *prometheus.Registry

	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	RelayConnections *prometheus.GaugeVec
	FramesReceived   prometheus.Counter
	FramesRelayed    prometheus.Counter
	FrameAge         prometheus.Histogram
	RelayRejections  *prometheus.CounterVec
}

// New registers all collectors, plus the Go runtime and process collectors,
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RelayConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "connections",
				Help:      "Open relay connections",
			},
			[]string{"role"},
		),
		FramesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "frames_received_total",
			Help:      "Binary frames accepted from producers",
		}),
		FramesRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "frames_relayed_total",
			Help:      "Binary frames written to consumers",
		}),
		FrameAge: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "frame_age_seconds",
			Help:      "Age of the stored frame at the moment it is written to a consumer",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		RelayRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "rejections_total",
				Help:      "Relay handshakes refused, by reason",
			},
			[]string{"role", "reason"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCount,
		m.RequestDuration,
		m.RelayConnections,
		m.FramesReceived,
		m.FramesRelayed,
		m.FrameAge,
		m.RelayRejections,
	)
	return m
}

// WatchFrames exposes the number of keys holding a frame in fs. It may be
// called once per Metrics.
func (m *Metrics) WatchFrames(fs *relay.FrameStore) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "stored_frames",
			Help:      "Camera keys that currently hold a frame",
		},
		func() float64 { return float64(fs.Len()) },
	))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records one count and duration sample per request, labelled by
// the matched route pattern. It must wrap the ServeMux directly so the
// pattern is visible once the mux returns.
//
// Hijacked connections are counted as 101 and kept out of the duration
// histogram, since their lifetime is the whole websocket session.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := http.StatusOK
		wroteHeader := false
		hijacked := false

		ww := httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(c int) {
					if !wroteHeader {
						code = c
						wroteHeader = true
					}
					next(c)
				}
			},
			Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(b []byte) (int, error) {
					wroteHeader = true
					return next(b)
				}
			},
			Hijack: func(next httpsnoop.HijackFunc) httpsnoop.HijackFunc {
				return func() (net.Conn, *bufio.ReadWriter, error) {
					conn, rw, err := next()
					if err == nil {
						hijacked = true
					}
					return conn, rw, err
				}
			},
		})

		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if hijacked {
			m.RequestCount.WithLabelValues(r.Method, route, strconv.Itoa(http.StatusSwitchingProtocols)).Inc()
			return
		}
		m.RequestCount.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Relay adapts m to the relay's event interface.
func (m *Metrics) Relay() relay.Metrics { return relayMetrics{m} }

type relayMetrics struct{ m *Metrics }

func (r relayMetrics) ConnOpened(role relay.Role) {
	r.m.RelayConnections.WithLabelValues(string(role)).Inc()
}

func (r relayMetrics) ConnClosed(role relay.Role) {
	r.m.RelayConnections.WithLabelValues(string(role)).Dec()
}

func (r relayMetrics) FrameReceived() { r.m.FramesReceived.Inc() }
func (r relayMetrics) FrameRelayed(age time.Duration) {
	r.m.FramesRelayed.Inc()
	r.m.FrameAge.Observe(age.Seconds())
}

func (r relayMetrics) Rejected(role relay.Role, reason string) {
	r.m.RelayRejections.WithLabelValues(string(role), reason).Inc()
}
