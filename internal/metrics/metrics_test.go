package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Pruned("stale")
	m.Pruned("stale")
	m.Pruned("malformed")
	m.Archived(3)
	m.RunFinished(false)
	m.RunFinished(true)

	if got := testutil.ToFloat64(m.entriesPruned.WithLabelValues("stale")); got != 2 {
		t.Errorf("stale = %v", got)
	}
	if got := testutil.ToFloat64(m.entriesPruned.WithLabelValues("malformed")); got != 1 {
		t.Errorf("malformed = %v", got)
	}
	if got := testutil.ToFloat64(m.filesArchived); got != 3 {
		t.Errorf("archived = %v", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("error")); got != 1 {
		t.Errorf("error runs = %v", got)
	}
	if got := testutil.ToFloat64(m.lastRun); got == 0 {
		t.Error("last run timestamp not set")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Pruned("stale")
	m.Archived(1)
	m.RunFinished(true)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.Archived(1)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "archive_and_delete_files_archived_total 1") {
		t.Fatalf("body missing counter:\n%s", rec.Body.String())
	}
}
