package http

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/logging"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/aretw0/ringlens/pkg/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes a view controller over HTTP.
type Server struct {
	Controller *view.Controller
	Streams    *StreamManager

	logger  *slog.Logger
	metrics *metrics.Registry
	origin  string
	ui      fs.FS
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics instruments requests and serves /metrics from r.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// WithCORSOrigin sets the Access-Control-Allow-Origin value. Defaults to "*".
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.origin = origin
	}
}

// WithUI serves the static browser client from fsys at "/".
func WithUI(fsys fs.FS) Option {
	return func(s *Server) {
		s.ui = fsys
	}
}

// NewServer wires a Server to the controller. State changes of every
// session are broadcast to its event subscribers.
func NewServer(ctrl *view.Controller, opts ...Option) *Server {
	s := &Server{
		Controller: ctrl,
		logger:     logging.NewNop(),
		origin:     "*",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger, s.metrics)
	ctrl.Observe(s.Streams.Observe)
	return s
}

// NewHandler creates a new HTTP handler for the controller.
func NewHandler(ctrl *view.Controller, opts ...Option) http.Handler {
	return NewServer(ctrl, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", s.ListScenarios)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetScenario)
				r.Get("/graph", s.GetGraph)
				r.Get("/summary", s.GetSummary)
				r.Get("/lens/{lens}", s.GetLens)
				r.Get("/checklist", s.GetChecklist)
				r.Get("/nodes/{nodeID}", s.ExplainNode)
			})
		})
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.StartSession)
			r.Route("/{sid}", func(r chi.Router) {
				r.Get("/", s.GetSession)
				r.Delete("/", s.EndSession)
				r.Post("/select", s.SelectScenario)
				r.Post("/load", s.LoadScenario)
				r.Post("/lens", s.SetLens)
				r.Post("/click", s.ClickNode)
				r.Post("/tab", s.SwitchTab)
				r.Post("/copy", s.Copy)
				r.Get("/events", s.SubscribeEvents)
			})
		})
	})

	if s.ui != nil {
		r.Handle("/*", http.FileServer(http.FS(s.ui)))
	}

	return enableCORS(s.origin, r)
}

func enableCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>ringlens API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "ringlens-http",
		"version":     strings.TrimSpace(ringlens.Version),
		"api_version": apiVersion,
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrScenarioNotFound),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, view.ErrUnknownTab),
		errors.Is(err, view.ErrUnknownTarget):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads an optional JSON body into v. An empty body leaves v as is.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
