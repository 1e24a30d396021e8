package schema

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	reads       *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jst",
			Subsystem: "reader",
			Name:      "reads_total",
			Help:      "number of schema reads, by registry hit.",
		}, []string{"hit"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jst",
			Subsystem: "reader",
			Name:      "resolutions_total",
			Help:      "number of schema resolutions, by success.",
		}, []string{"success"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jst",
			Subsystem: "reader",
			Name:      "resolution_duration_seconds",
			Help:      "distribution in seconds of time spent resolving one schema.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
	}
	m.reads = register(reg, m.reads)
	m.resolutions = register(reg, m.resolutions)
	m.duration = register(reg, m.duration)
	return m
}

// register registers c with reg, sharing the collector already
// registered by another reader.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if prev, ok := are.ExistingCollector.(C); ok {
			return prev
		}
	}
	panic(err)
}

func (m *metrics) read(hit bool) {
	if m == nil {
		return
	}
	m.reads.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

func (m *metrics) resolved(start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())
	m.resolutions.WithLabelValues(strconv.FormatBool(err == nil)).Inc()
}
