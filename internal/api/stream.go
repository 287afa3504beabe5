package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mindly-app/duel-engine/internal/duel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is one message on a duel's live stream
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub fans duel events out to connected WebSocket watchers
type Hub struct {
	mu    sync.RWMutex
	duels map[string]map[*websocket.Conn]bool
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{
		duels: make(map[string]map[*websocket.Conn]bool),
	}
}

// Add registers a connection as a watcher of a duel
func (h *Hub) Add(duelID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.duels[duelID] == nil {
		h.duels[duelID] = make(map[*websocket.Conn]bool)
	}
	h.duels[duelID][conn] = true
	slog.Debug("stream watcher connected", "duel", duelID, "watchers", len(h.duels[duelID]))
}

// Remove unregisters a connection and closes it
func (h *Hub) Remove(duelID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.duels[duelID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.duels, duelID)
		}
		slog.Debug("stream watcher disconnected", "duel", duelID)
	}
}

// Broadcast sends an event to every watcher of a duel
func (h *Hub) Broadcast(duelID string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.duels[duelID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal stream event", "error", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Debug("stream write failed, dropping watcher", "error", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}

// handleDuelWS upgrades the connection and streams duel events until the
// watcher disconnects. The first message is a snapshot of the duel.
func (s *Server) handleDuelWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "duel id required", http.StatusBadRequest)
		return
	}

	d, err := s.duelManager.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, duel.ErrDuelNotFound) {
			http.Error(w, "duel not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to get duel for stream", "error", err, "id", id)
		http.Error(w, "failed to get duel", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}

	// Snapshot goes out before the connection joins the hub so it cannot
	// interleave with a broadcast write.
	snapshot, err := json.Marshal(Event{Type: "state", Data: d.View()})
	if err == nil {
		if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
			conn.Close()
			return
		}
	}

	s.hub.Add(id, conn)
	defer s.hub.Remove(id, conn)

	// Watchers only listen; the read loop exists to detect disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("stream read error", "error", err)
			}
			return
		}
	}
}
