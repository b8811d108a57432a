package metrics

import (
	"time"
)

// Recording methods are no-ops on a nil *Registry so callers can leave
// metrics unconfigured.

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordScenarioLoad records a catalog load and the resulting scenario count.
func (r *Registry) RecordScenarioLoad(err error, count int) {
	if r == nil {
		return
	}
	if err != nil {
		r.ScenarioLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	r.ScenarioLoadsTotal.WithLabelValues("success").Inc()
	r.ScenariosLoaded.Set(float64(count))
}

// RecordNarrative counts a generated narrative (node, summary, lens, checklist).
func (r *Registry) RecordNarrative(kind string) {
	if r == nil {
		return
	}
	r.NarrativesTotal.WithLabelValues(kind).Inc()
}

// RecordCopy counts a copy action on a panel.
func (r *Registry) RecordCopy(target string, err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.CopyTotal.WithLabelValues(target, status).Inc()
}

// RecordSession counts a newly created session.
func (r *Registry) RecordSession() {
	if r == nil {
		return
	}
	r.SessionsCreated.Inc()
}

// TrackSubscriber adjusts the SSE subscriber gauge by delta.
func (r *Registry) TrackSubscriber(delta int) {
	if r == nil {
		return
	}
	r.SSESubscribers.Add(float64(delta))
}

// TrackInFlight adjusts the in-flight request gauge by delta.
func (r *Registry) TrackInFlight(delta int) {
	if r == nil {
		return
	}
	r.HTTPRequestsInFlight.Add(float64(delta))
}
