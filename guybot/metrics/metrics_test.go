package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCommandCount(t *testing.T) {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_total"}, []string{"command", "outcome"})
	o := NewPromCounterVec(vec)
	o.Observe(1, "joke", "ok")
	o.Observe(1, "joke", "ok")
	o.Observe(1, "joke", "error")
	if got := testutil.ToFloat64(vec.WithLabelValues("joke", "ok")); got != 2 {
		t.Errorf("ok count: want 2, got %v", got)
	}
	if got := testutil.ToFloat64(vec.WithLabelValues("joke", "error")); got != 1 {
		t.Errorf("error count: want 1, got %v", got)
	}
}

func TestSince(t *testing.T) {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "test_seconds"}, []string{"upstream"})
	o := NewPromObserverVec(vec)
	Since(o, time.Now().Add(-time.Second), "jokes")
	if n := testutil.CollectAndCount(vec); n != 1 {
		t.Errorf("want 1 series, got %d", n)
	}
}

func TestNilObserver(t *testing.T) {
	// Must not panic.
	Observe(nil, 1, "x")
	Since(nil, time.Now(), "x")
}

func TestNewRegisters(t *testing.T) {
	m := New()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.Collectors()...)
	m.CommandCount.Observe(1, "guysay", "ok")
	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("want 1 series, got %d", n)
	}
}
