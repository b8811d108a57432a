package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/ringlens/pkg/catalog"
	"github.com/aretw0/ringlens/pkg/fixtures"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	store, err := catalog.Load(context.Background(), fixtures.Loader())
	require.NoError(t, err)
	return NewServer(store, opts...)
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestListScenarios(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleListScenarios(context.Background(), call("list_scenarios", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var infos []ScenarioInfo
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, "ring-a", infos[0].ID)
	assert.Equal(t, 7, infos[0].Nodes)
	assert.Equal(t, 8, infos[0].Edges)
}

func TestGetGraph(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleGetGraph(context.Background(), call("get_graph", map[string]any{"scenario_id": "ring-a"}))
	require.NoError(t, err)

	var g struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &g))
	assert.Len(t, g.Nodes, 7)
	assert.Len(t, g.Edges, 8)
}

func TestToolErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
		want    string
	}{
		{"missing scenario", s.handleGetGraph, map[string]any{}, "scenario_id"},
		{"unknown scenario", s.handleSummary, map[string]any{"scenario_id": "nope"}, "scenario not found"},
		{"missing node", s.handleExplainNode, map[string]any{"scenario_id": "ring-a"}, "node_id"},
		{"unknown node", s.handleExplainNode, map[string]any{"scenario_id": "ring-a", "node_id": "zz"}, "node not found"},
		{"unknown lens", s.handleLens, map[string]any{"scenario_id": "ring-a", "lens": "astrology"}, "unknown lens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.handler(ctx, call("tool", tt.args))
			require.NoError(t, err, "tool failures are results, not protocol errors")
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res), tt.want)
		})
	}
}

func TestNarrativeTools(t *testing.T) {
	reg := metrics.NewRegistry()
	s := newTestServer(t, WithMetrics(reg))
	ctx := context.Background()

	res, err := s.handleExplainNode(ctx, call("explain_node", map[string]any{"scenario_id": "ring-a", "node_id": "b1"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "receives flows from 2 seller/merchant node(s) and is indirectly linked to 0 buyer node(s)")

	res, err = s.handleSummary(ctx, call("scenario_summary", map[string]any{"scenario_id": "ring-a"}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text(t, res), `Scenario "Ring A" models`))

	res, err = s.handleLens(ctx, call("lens_narrative", map[string]any{"scenario_id": "ring-a", "lens": "fraud"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.NotEmpty(t, text(t, res))

	res, err = s.handleChecklist(ctx, call("get_checklist", map[string]any{"scenario_id": "ring-a"}))
	require.NoError(t, err)
	lines := strings.Split(text(t, res), "\n")
	assert.Len(t, lines, 4)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "- "), l)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.NarrativesTotal.WithLabelValues("node")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.NarrativesTotal.WithLabelValues("lens")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.NarrativesTotal.WithLabelValues("checklist")))
}

func TestScenariosResource(t *testing.T) {
	s := newTestServer(t)
	contents, err := s.readScenarios(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, ScenariosURI, tc.URI)
	assert.Equal(t, "application/json", tc.MIMEType)
	assert.Contains(t, tc.Text, `"id":"mule-hub"`)
}

func TestToolsAreRegistered(t *testing.T) {
	s := newTestServer(t)
	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	out, err := json.Marshal(msg)
	require.NoError(t, err)

	for _, name := range []string{"list_scenarios", "get_graph", "explain_node", "scenario_summary", "lens_narrative", "get_checklist"} {
		assert.Contains(t, string(out), `"name":"`+name+`"`)
	}
	assert.Contains(t, string(out), `"enum":["fraud","aml","ts"]`)
}
