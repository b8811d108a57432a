package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/logging"
	"github.com/aretw0/ringlens/pkg/catalog"
	"github.com/aretw0/ringlens/pkg/display"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/aretw0/ringlens/pkg/narrative"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ScenariosURI is the resource listing every scenario as JSON.
const ScenariosURI = "ringlens://scenarios"

// ScenarioInfo is the list entry returned by list_scenarios.
type ScenarioInfo struct {
	ID          string `json:"id" jsonschema_description:"Scenario identifier"`
	Name        string `json:"name" jsonschema_description:"Display name"`
	Description string `json:"description" jsonschema_description:"What the scenario models"`
	Nodes       int    `json:"nodes" jsonschema_description:"Number of nodes"`
	Edges       int    `json:"edges" jsonschema_description:"Number of edges"`
}

// Server exposes the scenario catalog and its narratives as an MCP Server.
type Server struct {
	catalog   *catalog.Store
	mcpServer *server.MCPServer
	logger    *slog.Logger
	metrics   *metrics.Registry
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics counts generated narratives.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(store *catalog.Store, opts ...Option) *Server {
	s := &Server{
		catalog:   store,
		mcpServer: server.NewMCPServer("ringlens-mcp", strings.TrimSpace(ringlens.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the protocol over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://" + addr
	if strings.HasPrefix(addr, ":") {
		baseURL = "http://localhost" + addr
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func lensNames() []string {
	lenses := domain.Lenses()
	out := make([]string, len(lenses))
	for i, l := range lenses {
		out[i] = string(l)
	}
	return out
}

func (s *Server) registerTools() {
	scenarioArg := mcp.WithString("scenario_id", mcp.Required(), mcp.Description("Scenario identifier, as returned by list_scenarios"))

	s.mcpServer.AddTool(mcp.NewTool("list_scenarios",
		mcp.WithDescription("List the synthetic fraud and abuse scenarios."),
	), s.handleListScenarios)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the decorated nodes and edges of a scenario."),
		scenarioArg,
	), s.handleGetGraph)

	s.mcpServer.AddTool(mcp.NewTool("explain_node",
		mcp.WithDescription("Explain the role of a node from its direct neighbors."),
		scenarioArg,
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Node identifier within the scenario")),
	), s.handleExplainNode)

	s.mcpServer.AddTool(mcp.NewTool("scenario_summary",
		mcp.WithDescription("Summarize the composition of a scenario."),
		scenarioArg,
	), s.handleSummary)

	s.mcpServer.AddTool(mcp.NewTool("lens_narrative",
		mcp.WithDescription("Interpret a scenario through a fraud, AML or trust & safety lens."),
		scenarioArg,
		mcp.WithString("lens", mcp.Required(), mcp.Enum(lensNames()...), mcp.Description("Analytical lens")),
	), s.handleLens)

	s.mcpServer.AddTool(mcp.NewTool("get_checklist",
		mcp.WithDescription("Get the investigation checklist of a scenario as a bullet list."),
		scenarioArg,
	), s.handleChecklist)
}

// scenario resolves the scenario_id argument. A miss is reported as a tool
// error result so the model can recover.
func (s *Server) scenario(request mcp.CallToolRequest) (domain.Scenario, *mcp.CallToolResult) {
	id, err := request.RequireString("scenario_id")
	if err != nil {
		return domain.Scenario{}, mcp.NewToolResultError(err.Error())
	}
	sc, err := s.catalog.Get(id)
	if err != nil {
		s.logger.Debug("MCP: scenario lookup failed", "scenario_id", id, "err", err)
		return domain.Scenario{}, mcp.NewToolResultError(err.Error())
	}
	return sc, nil
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := s.catalog.All()
	infos := make([]ScenarioInfo, 0, len(all))
	for _, sc := range all {
		infos = append(infos, ScenarioInfo{
			ID:          sc.ID,
			Name:        sc.Name,
			Description: sc.Description,
			Nodes:       len(sc.Nodes),
			Edges:       len(sc.Edges),
		})
	}
	jsonBytes, err := json.Marshal(infos)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenarios: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, res := s.scenario(request)
	if res != nil {
		return res, nil
	}
	jsonBytes, err := json.Marshal(display.Build(sc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleExplainNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, res := s.scenario(request)
	if res != nil {
		return res, nil
	}
	nodeID, err := request.RequireString("node_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	node, ok := sc.Node(nodeID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%v: %s in scenario %s", domain.ErrNodeNotFound, nodeID, sc.ID)), nil
	}

	s.metrics.RecordNarrative("node")
	return mcp.NewToolResultText(narrative.ExplainNode(node, display.Build(sc))), nil
}

func (s *Server) handleSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, res := s.scenario(request)
	if res != nil {
		return res, nil
	}
	s.metrics.RecordNarrative("summary")
	return mcp.NewToolResultText(narrative.Summary(sc)), nil
}

func (s *Server) handleLens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, res := s.scenario(request)
	if res != nil {
		return res, nil
	}
	lens := domain.Lens(request.GetString("lens", string(domain.DefaultLens)))
	if !lens.Known() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown lens %q, expected one of %s", lens, strings.Join(lensNames(), ", "))), nil
	}
	s.metrics.RecordNarrative("lens")
	return mcp.NewToolResultText(narrative.Lens(sc, lens)), nil
}

func (s *Server) handleChecklist(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, res := s.scenario(request)
	if res != nil {
		return res, nil
	}
	s.metrics.RecordNarrative("checklist")
	return mcp.NewToolResultText(narrative.Checklist(sc.Checklist)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ScenariosURI, "Scenario Catalog",
		mcp.WithResourceDescription("Every loaded scenario with its nodes, edges and checklist."),
		mcp.WithMIMEType("application/json"),
	), s.readScenarios)
}

func (s *Server) readScenarios(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.catalog.All())
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenarios: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ScenariosURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
