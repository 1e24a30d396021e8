package schema

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestReaderMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	r := NewReader(testSource(t), WithScope(ScopePrivate), WithMetrics(reg))
	for range 2 {
		if _, err := r.Read("lead"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := r.Read("absent"); err == nil {
		t.Fatal("absent schema read")
	}
	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"misses", r.metrics.reads.WithLabelValues("false"), 3},
		{"hits", r.metrics.reads.WithLabelValues("true"), 1},
		{"resolved", r.metrics.resolutions.WithLabelValues("true"), 1},
		{"failed", r.metrics.resolutions.WithLabelValues("false"), 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
	if n := testutil.CollectAndCount(r.metrics.duration); n != 1 {
		t.Errorf("duration histogram count = %d", n)
	}

	// a second reader on the same registerer shares the collectors
	r2 := NewReader(testSource(t), WithScope(ScopePrivate), WithMetrics(reg))
	if _, err := r2.Read("address"); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(r.metrics.resolutions.WithLabelValues("true")); got != 2 {
		t.Errorf("shared resolved = %v, want 2", got)
	}
}
