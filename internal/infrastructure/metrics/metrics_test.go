package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWith(registry)

	if m.MovementsPosted == nil || m.BudgetRecomputes == nil || m.TransferRollbacks == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.MovementsPosted.WithLabelValues("expense").Inc()
	m.BudgetRecomputes.WithLabelValues("ok").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.MovementsPosted.WithLabelValues("expense")); got != 1 {
		t.Fatalf("expected 1 expense posted, got %v", got)
	}
}

func TestNewWithTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewWith(registry)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	NewWith(registry)
}
