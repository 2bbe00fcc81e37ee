package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordReadingIngested()
	m.RecordReadingIngested()
	m.RecordAlertEmitted("ph")
	m.RecordAlertWriteFailure()

	if got := testutil.ToFloat64(m.readingsIngested); got != 2 {
		t.Fatalf("expected 2 readings ingested, got %v", got)
	}
	if got := testutil.ToFloat64(m.alertsEmitted.WithLabelValues("ph")); got != 1 {
		t.Fatalf("expected 1 ph alert emitted, got %v", got)
	}
	if got := testutil.ToFloat64(m.alertWriteFailures); got != 1 {
		t.Fatalf("expected 1 alert write failure, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	m.RecordReadingIngested()
	m.RecordAlertEmitted("ph")
	m.RecordAlertWriteFailure()
}
