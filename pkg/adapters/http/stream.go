package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/ringlens/internal/logging"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/aretw0/ringlens/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // SessionID -> Set of Channels

	logger  *slog.Logger
	metrics *metrics.Registry
}

// NewStreamManager creates an empty manager. Both arguments may be nil.
func NewStreamManager(logger *slog.Logger, m *metrics.Registry) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
		metrics:     m,
	}
}

func (sm *StreamManager) Subscribe(sessionID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}
	sm.metrics.TrackSubscriber(1)

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			sm.metrics.TrackSubscriber(-1)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

// Subscribers returns the number of open streams of a session.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "session_id", sessionID, "payload_size", len(msg))

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Observe broadcasts the diff between two states of a session. It has the
// signature of view.Observer.
func (sm *StreamManager) Observe(prev, next *domain.ViewState) {
	diff := domain.Diff(prev, next)
	if diff == nil {
		return
	}
	bytes, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("SSE: Diff encode failed", "session_id", next.SessionID, "err", err)
		return
	}
	sm.Broadcast(next.SessionID, string(bytes))
}

// watched reports whether a diff touches any of the watched fields.
func watched(diff domain.StateDiff, fields []string) bool {
	for _, field := range fields {
		switch strings.TrimSpace(field) {
		case "scenario":
			if diff.ScenarioID != nil || diff.SelectedScenarioID != nil {
				return true
			}
		case "lens":
			if diff.Lens != nil {
				return true
			}
		case "tab":
			if diff.ActiveTab != nil {
				return true
			}
		case "node":
			if diff.SelectedNodeID != nil || diff.NodeText != nil {
				return true
			}
		}
	}
	return false
}

// SubscribeEvents handles GET /api/sessions/{sid}/events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sid")
	if _, err := s.Controller.Get(r.Context(), sessionID); err != nil {
		s.writeError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", sessionID)
	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	var watchList []string
	if watch := r.URL.Query().Get("watch"); watch != "" {
		watchList = strings.Split(watch, ",")
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watchList) > 0 {
				var diff domain.StateDiff
				if err := json.Unmarshal([]byte(msg), &diff); err == nil && !watched(diff, watchList) {
					continue
				}
			}

			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
