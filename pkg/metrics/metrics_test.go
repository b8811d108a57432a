package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.NarrativesTotal == nil {
		t.Error("NarrativesTotal not initialized")
	}
	if r.ScenariosLoaded == nil {
		t.Error("ScenariosLoaded not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/api/scenarios", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/scenarios", "200", 50*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/scenarios/{id}", "404", 5*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/api/scenarios", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 2 {
		t.Errorf("Counter value = %v, want 2", got)
	}
}

func TestRecordScenarioLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordScenarioLoad(nil, 3)
	r.RecordScenarioLoad(errors.New("boom"), 0)

	if got := gaugeValue(t, r.ScenariosLoaded); got != 3 {
		t.Errorf("ScenariosLoaded = %v, want 3 (a failed load must not reset it)", got)
	}
	if got := counterValue(t, r.ScenarioLoadsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("error loads = %v, want 1", got)
	}
}

func TestRecordNarrativeAndCopy(t *testing.T) {
	r := NewRegistry()

	r.RecordNarrative("node")
	r.RecordNarrative("node")
	r.RecordNarrative("lens")
	r.RecordCopy("summary", nil)
	r.RecordCopy("node", errors.New("no clipboard"))

	if got := counterValue(t, r.NarrativesTotal.WithLabelValues("node")); got != 2 {
		t.Errorf("node narratives = %v, want 2", got)
	}
	if got := counterValue(t, r.CopyTotal.WithLabelValues("node", "error")); got != 1 {
		t.Errorf("failed node copies = %v, want 1", got)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.RecordHTTPRequest("GET", "/", "200", time.Millisecond)
	r.RecordScenarioLoad(nil, 1)
	r.RecordNarrative("node")
	r.RecordCopy("summary", nil)
	r.RecordSession()
	r.TrackSubscriber(1)
	r.TrackInFlight(1)
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordSession()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ringlens_sessions_created_total 1") {
		t.Errorf("exposition missing session counter:\n%s", rec.Body.String())
	}
}
