package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exports render and API counters to Prometheus.
type Collector struct {
	registry        *prometheus.Registry
	framesTotal     prometheus.Counter
	cellsTotal      prometheus.Counter
	bytesTotal      prometheus.Counter
	fps             prometheus.Gauge
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	streamClients   prometheus.Gauge
}

// NewCollector creates the collectors on a private registry.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Frames rendered",
		}),
		cellsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_cells_written_total",
			Help: "Cells written by the differential renderer",
		}),
		bytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_bytes_written_total",
			Help: "Bytes written to the terminal",
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_fps",
			Help: "Smoothed frames per second",
		}),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "orrery_request_duration_seconds",
				Help: "Time spent processing API requests",
			},
			[]string{"route"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"route", "code"},
		),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_stream_clients",
			Help: "Connected position stream clients",
		}),
	}

	m.registry.MustRegister(
		m.framesTotal,
		m.cellsTotal,
		m.bytesTotal,
		m.fps,
		m.requestDuration,
		m.requestsTotal,
		m.streamClients,
	)
	return m
}

// ObserveFrame records one rendered frame.
func (m *Collector) ObserveFrame(cells int, bytes int64, fps float64) {
	m.framesTotal.Inc()
	m.cellsTotal.Add(float64(cells))
	if bytes > 0 {
		m.bytesTotal.Add(float64(bytes))
	}
	m.fps.Set(fps)
}

// RecordRequest observes request duration and increments the request count.
func (m *Collector) RecordRequest(route, code string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(route, code).Inc()
}

func (m *Collector) StreamOpened() { m.streamClients.Inc() }
func (m *Collector) StreamClosed() { m.streamClients.Dec() }

func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
