package web

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"yokaiquest/internal/game"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// hub fans the ledger's event stream out to websocket listeners, keyed
// by profile id. Listeners only ever receive; nothing flows back into
// the core.
type hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]bool
	log   *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{conns: map[string]map[*websocket.Conn]bool{}, log: logger}
}

func (h *hub) add(profile string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[profile] == nil {
		h.conns[profile] = map[*websocket.Conn]bool{}
	}
	h.conns[profile][c] = true
}

func (h *hub) remove(profile string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[profile], c)
	if len(h.conns[profile]) == 0 {
		delete(h.conns, profile)
	}
}

func (h *hub) broadcast(profile string, ev game.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns[profile] {
		if err := c.WriteJSON(ev); err != nil {
			_ = c.Close()
			delete(h.conns[profile], c)
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(r)
	if id == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Warn("websocket upgrade", "error", err)
		return
	}
	s.hub.add(id, conn)
	defer func() {
		s.hub.remove(id, conn)
		_ = conn.Close()
	}()

	// Drain the connection; close frames end the loop.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
