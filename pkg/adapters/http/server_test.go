package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aretw0/ringlens/pkg/adapters/memory"
	"github.com/aretw0/ringlens/pkg/catalog"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/fixtures"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/aretw0/ringlens/pkg/session"
	"github.com/aretw0/ringlens/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	store, err := catalog.Load(context.Background(), fixtures.Loader())
	require.NoError(t, err)
	ctrl := view.NewController(store, session.NewManager(memory.NewStore()))
	srv := NewServer(ctrl, opts...)
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, w)["status"])

	w = do(t, h, "GET", "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeBody[map[string]string](t, w)
	assert.Equal(t, "ringlens-http", info["app"])
	assert.Equal(t, "0.3.0", info["api_version"])
	assert.NotEmpty(t, info["version"])
	assert.NotContains(t, info["version"], "\n")
}

func TestOpenAPIDocument(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "ringlens API", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/api/sessions/{sid}/events"))

	_, h := newTestServer(t)
	w := do(t, h, "GET", "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")

	w = do(t, h, "GET", "/swagger", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "url: '/openapi.yaml'")
}

func TestScenarioEndpoints(t *testing.T) {
	_, h := newTestServer(t)

	t.Run("List", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decodeBody[[]ScenarioInfo](t, w)
		require.Len(t, list, 4)
		assert.Equal(t, ScenarioInfo{ID: "ring-a", Name: "Ring A", Description: list[0].Description, Nodes: 7, Edges: 8}, list[0])
	})

	t.Run("Get", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios/ring-a", nil)
		require.Equal(t, http.StatusOK, w.Code)
		sc := decodeBody[domain.Scenario](t, w)
		assert.Equal(t, "Ring A", sc.Name)
		assert.Len(t, sc.Edges, 8)
	})

	t.Run("Unknown", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios/nope/graph", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeBody[errorResponse](t, w).Error, "scenario not found")
	})

	t.Run("Graph", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios/ring-a/graph", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var g struct {
			ScenarioID string           `json:"scenario_id"`
			Nodes      []map[string]any `json:"nodes"`
			Edges      []map[string]any `json:"edges"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
		assert.Equal(t, "ring-a", g.ScenarioID)
		assert.Len(t, g.Nodes, 7)
		require.Len(t, g.Edges, 8)
		assert.Equal(t, "e0", g.Edges[0]["id"])
		assert.Equal(t, "ORDER", g.Edges[0]["label"])
	})

	t.Run("Summary", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios/ring-a/summary", nil)
		require.Equal(t, http.StatusOK, w.Code)
		n := decodeBody[Narrative](t, w)
		assert.Equal(t, "summary", n.Kind)
		assert.True(t, strings.HasPrefix(n.Text, `Scenario "Ring A" models`))
	})

	t.Run("Lens", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios/ring-a/lens/aml", nil)
		require.Equal(t, http.StatusOK, w.Code)
		n := decodeBody[Narrative](t, w)
		assert.Equal(t, "AML / fincrime", n.Title)
		assert.NotEmpty(t, n.Text)

		w = do(t, h, "GET", "/api/scenarios/ring-a/lens/astrology", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeBody[Narrative](t, w).Text)
	})

	t.Run("Checklist", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios/ring-a/checklist", nil)
		require.Equal(t, http.StatusOK, w.Code)
		c := decodeBody[Checklist](t, w)
		require.Len(t, c.Items, 4)
		assert.Equal(t, "- "+c.Items[0], strings.Split(c.Text, "\n")[0])
	})

	t.Run("Node", func(t *testing.T) {
		w := do(t, h, "GET", "/api/scenarios/ring-a/nodes/b1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		n := decodeBody[NodeInsight](t, w)
		assert.Equal(t, "pill-bank", n.Header.Pill)
		assert.Equal(t, 2, n.Neighbors.Sellers)
		assert.Equal(t, 0, n.Neighbors.Buyers)
		assert.Contains(t, n.Text, "receives flows from 2 seller/merchant node(s) and is indirectly linked to 0 buyer node(s)")

		w = do(t, h, "GET", "/api/scenarios/ring-a/nodes/zz", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionFlow(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, "POST", "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	snap := decodeBody[view.Snapshot](t, w)
	sid := snap.State.SessionID
	require.NotEmpty(t, sid)
	assert.Equal(t, "ring-a", snap.State.ScenarioID)
	require.NotNil(t, snap.Graph)
	base := "/api/sessions/" + sid

	w = do(t, h, "POST", base+"/select", scenarioRequest{ScenarioID: "mule-hub"})
	require.Equal(t, http.StatusOK, w.Code)
	snap = decodeBody[view.Snapshot](t, w)
	assert.Equal(t, "mule-hub", snap.State.SelectedScenarioID)
	assert.Equal(t, "ring-a", snap.State.ScenarioID, "selecting does not load")

	w = do(t, h, "POST", base+"/load", scenarioRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	snap = decodeBody[view.Snapshot](t, w)
	assert.Equal(t, "mule-hub", snap.State.ScenarioID)
	assert.Equal(t, "Payout Mule Hub", snap.Panels.ScenarioName)

	w = do(t, h, "POST", base+"/click", clickRequest{NodeID: "hub"})
	require.Equal(t, http.StatusOK, w.Code)
	snap = decodeBody[view.Snapshot](t, w)
	assert.Equal(t, domain.TabNode, snap.State.ActiveTab)
	assert.Equal(t, "hub", snap.State.SelectedNodeID)
	require.NotNil(t, snap.Panels.NodeHeader)
	assert.Equal(t, "pill-bank", snap.Panels.NodeHeader.Pill)

	w = do(t, h, "POST", base+"/lens", lensRequest{Lens: domain.LensTS})
	require.Equal(t, http.StatusOK, w.Code)
	snap = decodeBody[view.Snapshot](t, w)
	assert.Equal(t, domain.TabScenarioLens, snap.State.ActiveTab)
	assert.Equal(t, "Trust & safety", snap.Panels.LensTitle)

	w = do(t, h, "POST", base+"/tab", tabRequest{Tab: domain.TabSummary})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "POST", base+"/copy", copyRequest{Target: view.TargetNode})
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeBody[view.CopyResult](t, w)
	assert.Contains(t, res.Text, "Personal Account 9031")
	assert.Equal(t, "Copied!", res.Ack.Label)
	assert.Equal(t, "Copy node insight", res.Ack.Restore)
	assert.EqualValues(t, 1200, res.Ack.AfterMS)

	w = do(t, h, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mule-hub", decodeBody[view.Snapshot](t, w).State.ScenarioID)

	w = do(t, h, "DELETE", base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "GET", base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionErrors(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, "POST", "/api/sessions", startRequest{SessionID: "s-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "s-1", decodeBody[view.Snapshot](t, w).State.SessionID)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"unknown session", "/api/sessions/missing/click", clickRequest{NodeID: "b1"}, http.StatusNotFound},
		{"unknown scenario", "/api/sessions/s-1/load", scenarioRequest{ScenarioID: "nope"}, http.StatusNotFound},
		{"unknown tab", "/api/sessions/s-1/tab", tabRequest{Tab: "tabLedger"}, http.StatusBadRequest},
		{"unknown copy target", "/api/sessions/s-1/copy", copyRequest{Target: "graph"}, http.StatusBadRequest},
		{"unknown node is ignored", "/api/sessions/s-1/click", clickRequest{NodeID: "zz"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/sessions/s-1/lens", strings.NewReader("{"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w = do(t, h, "GET", "/api/sessions/s-1", nil)
	snap := decodeBody[view.Snapshot](t, w)
	assert.Equal(t, "ring-a", snap.State.ScenarioID, "failed load leaves the state")
	assert.Equal(t, domain.TabSummary, snap.State.ActiveTab)
}

func TestCORS(t *testing.T) {
	_, h := newTestServer(t, WithCORSOrigin("https://ringlens.example"))

	w := do(t, h, "OPTIONS", "/api/scenarios", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://ringlens.example", w.Header().Get("Access-Control-Allow-Origin"))

	_, h = newTestServer(t)
	w = do(t, h, "GET", "/health", nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := metrics.NewRegistry()
	_, h := newTestServer(t, WithMetrics(reg))

	do(t, h, "GET", "/api/scenarios/ring-a/summary", nil)
	do(t, h, "GET", "/api/scenarios/ring-a/summary", nil)

	w := do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `ringlens_http_requests_total{method="GET",path="/api/scenarios/{id}/summary",status="200"} 2`)
	assert.Contains(t, body, `ringlens_narratives_total{kind="summary"} 2`)
}

func TestMetricsDisabled(t *testing.T) {
	_, h := newTestServer(t)
	w := do(t, h, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticUI(t *testing.T) {
	ui := fstest.MapFS{
		"index.html": {Data: []byte("<html>ringlens</html>")},
	}
	_, h := newTestServer(t, WithUI(ui))

	w := do(t, h, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ringlens")

	w = do(t, h, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "API routes win over the UI")
}

func TestSubscribeEvents(t *testing.T) {
	srv, h := newTestServer(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	_, err := srv.Controller.Start(context.Background(), "sess-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/api/sessions/sess-1/events?watch=node", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	next := func() string {
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatal("stream closed")
				}
				if line != "" {
					return line
				}
			case <-ctx.Done():
				t.Fatal("timed out waiting for event")
			}
		}
	}

	assert.Equal(t, "event: ping", next())
	assert.Equal(t, "data: connected", next())

	require.Eventually(t, func() bool { return srv.Streams.Subscribers("sess-1") == 1 }, time.Second, 10*time.Millisecond)

	// Filtered out: only the tab changes.
	_, err = srv.Controller.SwitchTab(ctx, "sess-1", domain.TabScenarioLens)
	require.NoError(t, err)

	_, err = srv.Controller.Click(ctx, "sess-1", "b1")
	require.NoError(t, err)

	line := next()
	require.True(t, strings.HasPrefix(line, "data: "), line)
	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &diff))
	assert.Equal(t, "sess-1", diff.SessionID)
	require.NotNil(t, diff.SelectedNodeID)
	assert.Equal(t, "b1", *diff.SelectedNodeID)
	require.NotNil(t, diff.ActiveTab)
	assert.Equal(t, domain.TabNode, *diff.ActiveTab)
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	_, h := newTestServer(t)
	w := do(t, h, "GET", "/api/sessions/ghost/events", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamManager(t *testing.T) {
	reg := metrics.NewRegistry()
	sm := NewStreamManager(nil, reg)

	ch, cancel := sm.Subscribe("a")
	assert.Equal(t, 1, sm.Subscribers("a"))

	sm.Observe(&domain.ViewState{SessionID: "a"}, &domain.ViewState{SessionID: "a", Lens: domain.LensAML})
	sm.Observe(&domain.ViewState{SessionID: "a"}, &domain.ViewState{SessionID: "a"})
	sm.Broadcast("b", "ignored")

	msg := <-ch
	assert.JSONEq(t, `{"session_id":"a","lens":"aml"}`, msg)
	assert.Empty(t, ch, "an unchanged state is not broadcast")

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers("a"))
	_, open := <-ch
	assert.False(t, open)
}

func TestWatched(t *testing.T) {
	lens := domain.LensTS
	tab := domain.TabNode
	id := "x"

	assert.True(t, watched(domain.StateDiff{Lens: &lens}, []string{"lens"}))
	assert.True(t, watched(domain.StateDiff{ActiveTab: &tab}, []string{"node", " tab"}))
	assert.True(t, watched(domain.StateDiff{ScenarioID: &id}, []string{"scenario"}))
	assert.True(t, watched(domain.StateDiff{NodeText: &id}, []string{"node"}))
	assert.False(t, watched(domain.StateDiff{Lens: &lens}, []string{"tab", "bogus"}))
}
