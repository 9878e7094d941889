package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the scheduler.
// A nil receiver is inert, so the engine works without metrics wired in.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	toggles         prometheus.Counter
	commits         prometheus.Counter
	slotsCommitted  prometheus.Counter
	generationRuns  prometheus.Counter
	slotsGenerated  prometheus.Counter
	unmetFaculty    prometheus.Gauge
	conflictScans   prometheus.Counter
	conflictedSlots prometheus.Gauge
}

// NewMetricsService registers the scheduler collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	toggles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_slot_toggles_total",
		Help: "Total slot select/deselect operations",
	})

	commits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_commits_total",
		Help: "Total committed selections",
	})

	slotsCommitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_slots_committed_total",
		Help: "Total slots written by manual commits",
	})

	generationRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_generation_runs_total",
		Help: "Total auto-generation runs",
	})

	slotsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_slots_generated_total",
		Help: "Total slots assigned by auto-generation",
	})

	unmetFaculty := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_unmet_faculty",
		Help: "Faculty with unmet need after the last auto-generation run",
	})

	conflictScans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_conflict_scans_total",
		Help: "Total room-conflict scans",
	})

	conflictedSlots := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_conflicted_slots",
		Help: "Conflicted slots found by the last scan",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, toggles, commits, slotsCommitted,
		generationRuns, slotsGenerated, unmetFaculty, conflictScans, conflictedSlots, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		toggles:         toggles,
		commits:         commits,
		slotsCommitted:  slotsCommitted,
		generationRuns:  generationRuns,
		slotsGenerated:  slotsGenerated,
		unmetFaculty:    unmetFaculty,
		conflictScans:   conflictScans,
		conflictedSlots: conflictedSlots,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveToggle counts one slot select/deselect.
func (m *MetricsService) ObserveToggle() {
	if m == nil {
		return
	}
	m.toggles.Inc()
}

// ObserveCommit counts a committed selection and its slots.
func (m *MetricsService) ObserveCommit(slots int) {
	if m == nil {
		return
	}
	m.commits.Inc()
	m.slotsCommitted.Add(float64(slots))
}

// ObserveGeneration records one auto-generation run.
func (m *MetricsService) ObserveGeneration(assigned, unmet int) {
	if m == nil {
		return
	}
	m.generationRuns.Inc()
	m.slotsGenerated.Add(float64(assigned))
	m.unmetFaculty.Set(float64(unmet))
}

// ObserveConflictScan records one room-conflict scan.
func (m *MetricsService) ObserveConflictScan(conflicted int) {
	if m == nil {
		return
	}
	m.conflictScans.Inc()
	m.conflictedSlots.Set(float64(conflicted))
}
