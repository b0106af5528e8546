// Package metrics exposes economy activity as Prometheus series.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/MarkoPoloResearchLab/ink/pkg/economy"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace    = "ink"
	codeInternal = "internal"
	unknownLabel = "unknown"
)

// Recorder implements economy.OperationLogger on a dedicated registry.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	amounts    *prometheus.CounterVec
	rejections *prometheus.CounterVec
	retries    *prometheus.CounterVec
	requests   *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them, together with the process and Go collectors.
func NewRecorder() *Recorder {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Economy operations segmented by operation and outcome status.",
		}, []string{"operation", "status"}),
		amounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_total",
			Help:      "Absolute INK moved by committed operations, segmented by transaction type.",
		}, []string{"operation", "type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Failed economy operations segmented by rejection code.",
		}, []string{"operation", "code"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cas_retries_total",
			Help:      "Compare-and-swap attempts beyond the first.",
		}, []string{"operation"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution for HTTP handlers.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	recorder.registry.MustRegister(
		recorder.operations,
		recorder.amounts,
		recorder.rejections,
		recorder.retries,
		recorder.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return recorder
}

// Registry returns the registry backing the recorder.
func (recorder *Recorder) Registry() *prometheus.Registry {
	return recorder.registry
}

func (recorder *Recorder) LogOperation(_ context.Context, entry economy.OperationLog) {
	operation := labelOrUnknown(entry.Operation)
	recorder.operations.WithLabelValues(operation, labelOrUnknown(entry.Status)).Inc()
	if entry.Attempts > 1 {
		recorder.retries.WithLabelValues(operation).Add(float64(entry.Attempts - 1))
	}
	switch entry.Status {
	case economy.OperationStatusError:
		code, ok := economy.RejectionCode(entry.Error)
		if !ok {
			code = codeInternal
		}
		recorder.rejections.WithLabelValues(operation, code).Inc()
	case economy.OperationStatusOK:
		if entry.Amount > 0 {
			recorder.amounts.WithLabelValues(operation, labelOrUnknown(entry.Type.String())).Add(float64(entry.Amount))
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (recorder *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{Registry: recorder.registry})
}

// GinMiddleware observes request latency per matched route.
func (recorder *Recorder) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = unknownLabel
		}
		recorder.requests.
			WithLabelValues(route, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func labelOrUnknown(value string) string {
	if value == "" {
		return unknownLabel
	}
	return value
}
