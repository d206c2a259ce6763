// Package web is the presentation boundary: a JSON API over the game
// core plus a websocket event stream. It renders nothing and feeds
// nothing back into resolution logic.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"yokaiquest/internal/content"
	"yokaiquest/internal/game"
	"yokaiquest/internal/save"
	"yokaiquest/internal/session"
)

const cookieName = "yokaiquest_sid"

// Server serves the game API for any number of cookie-identified
// profiles sharing one engine.
type Server struct {
	Engine   *game.Engine
	Sessions session.Store[*game.State]
	Save     save.Store
	Log      *slog.Logger

	hub *hub
}

// NewServer wires a server over an engine and its stores. Save may be
// nil; progress is then session-only.
func NewServer(engine *game.Engine, sessions session.Store[*game.State], store save.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Engine:   engine,
		Sessions: sessions,
		Save:     store,
		Log:      logger,
		hub:      newHub(logger),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/log", s.handleLog)

	mux.HandleFunc("POST /api/game/new", s.handleNewGame)
	mux.HandleFunc("POST /api/game/continue", s.handleContinue)
	mux.HandleFunc("GET /api/scenario/current", s.handleCurrentNode)
	mux.HandleFunc("POST /api/scenario/action", s.handleCardAction)

	mux.HandleFunc("POST /api/battle/attack", s.handleAttack)
	mux.HandleFunc("POST /api/battle/defend", s.handleDefend)
	mux.HandleFunc("POST /api/battle/enemy-turn", s.handleEnemyTurn)

	mux.HandleFunc("POST /api/items/equip", s.handleEquip)
	mux.HandleFunc("POST /api/items/unequip", s.handleUnequip)
	mux.HandleFunc("POST /api/items/use", s.handleUseItem)

	mux.HandleFunc("POST /api/titles/select", s.handleSelectTitle)
	mux.HandleFunc("POST /api/settings", s.handleSettings)

	mux.HandleFunc("GET /map.pdf", s.handleMap)
	mux.HandleFunc("GET /ws", s.handleWS)

	return mux
}

// getOrCreateState resolves the profile behind the request cookie,
// rehydrating durable fields from the snapshot store on first sight.
func (s *Server) getOrCreateState(ctx context.Context, w http.ResponseWriter, r *http.Request) (*game.State, string) {
	id := s.sessionID(r)
	if id == "" {
		id = s.Sessions.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return s.freshState(ctx, id), id
	}

	st, ok, _ := s.Sessions.Get(ctx, id)
	if !ok {
		// Known cookie, cold process: rebuild from durable fields.
		st = s.freshState(ctx, id)
	}
	return st, id
}

func (s *Server) freshState(ctx context.Context, id string) *game.State {
	st := game.NewState()
	if s.Save != nil {
		snap, err := s.Save.All(ctx, id)
		if err != nil {
			// Corrupt or unreadable snapshots never block startup.
			s.Log.Warn("restore snapshot", "profile", id, "error", err)
		} else if len(snap) > 0 {
			st.RestoreSnapshot(snap)
		}
	}
	st.TouchLogin(time.Now())
	st.EventSink = func(ev game.Event) { s.hub.broadcast(id, ev) }
	// Record the login durably even if no mutating handler ever runs.
	s.persist(ctx, id, st)
	return st
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// persist mirrors the durable whitelist to the snapshot store.
func (s *Server) persist(ctx context.Context, id string, st *game.State) {
	_ = s.Sessions.Put(ctx, id, st)
	if s.Save == nil {
		return
	}
	if err := s.Save.PutAll(ctx, id, st.Snapshot()); err != nil {
		s.Log.Warn("persist snapshot", "profile", id, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the core's error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrWrongTurn):
		status = http.StatusConflict
	case errors.Is(err, game.ErrUnknownID):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInvalidAction):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// ItemView is one display-grouped inventory row.
type ItemView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Count    int    `json:"count"`
	Cooldown int    `json:"cooldown,omitempty"`
}

// StateView is the full snapshot presentation renders from.
type StateView struct {
	Mode      game.Mode             `json:"mode"`
	Player    game.Player           `json:"player"`
	Battle    *game.BattleState     `json:"battle,omitempty"`
	Node      *content.ScenarioNode `json:"node,omitempty"`
	Inventory []ItemView            `json:"inventory"`
	Equipment game.Equipment        `json:"equipment"`
	Reels     []game.ReelStatus     `json:"reels"`
	Defending bool                  `json:"defending"`
	Titles    []string              `json:"titles"`
	Title     string                `json:"currentTitle"`
	Stats     game.Stats            `json:"stats"`
	Cards     []string              `json:"collectedCards"`
	Defeat    *game.DefeatRecord    `json:"defeat,omitempty"`
}

func (s *Server) stateView(st *game.State) StateView {
	var node *content.ScenarioNode
	if st.CurrentNode != "" {
		if n, ok := s.Engine.Content.Node(st.CurrentNode); ok {
			node = n
		}
	}

	var items []ItemView
	seen := map[string]int{}
	for _, id := range st.Inventory {
		if i, ok := seen[id]; ok {
			items[i].Count++
			continue
		}
		view := ItemView{ID: id, Name: id, Count: 1, Cooldown: st.ItemCooldown(id)}
		if item, ok := s.Engine.Content.Item(id); ok {
			view.Name = item.Name
			view.Icon = item.Icon
		}
		seen[id] = len(items)
		items = append(items, view)
	}

	return StateView{
		Mode:      st.Mode,
		Player:    st.Player,
		Battle:    st.Battle,
		Node:      node,
		Inventory: items,
		Equipment: st.Equipment,
		Reels:     st.Reels,
		Defending: st.Defending,
		Titles:    st.UnlockedTitles,
		Title:     st.CurrentTitle,
		Stats:     st.Stats,
		Cards:     st.CollectedCards,
		Defeat:    st.Defeat,
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, _ := s.getOrCreateState(r.Context(), w, r)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	st, _ := s.getOrCreateState(r.Context(), w, r)
	log := st.Log
	if log == nil {
		log = []game.Event{}
	}
	writeJSON(w, http.StatusOK, log)
}
