package web

import (
	"net/http"

	"yokaiquest/internal/content"
	"yokaiquest/internal/game"
)

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	st.StartNewGame()
	if _, err := s.Engine.StartScenario(st, s.Engine.Content.Scenario.Entry); err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	if _, err := s.Engine.ContinueFromSavePoint(st); err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

// handleCurrentNode resolves the node the player currently stands on,
// entering the scenario at its entry point for profiles that have not
// started yet.
func (s *Server) handleCurrentNode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	node, err := s.Engine.LoadCurrentScenario(st)
	if err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, node)
}

type cardActionRequest struct {
	NodeID    string `json:"nodeId"`
	Direction string `json:"direction"`
}

func (s *Server) handleCardAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	var req cardActionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if req.NodeID == "" {
		req.NodeID = st.CurrentNode
	}
	if err := s.Engine.ProcessCardAction(st, req.NodeID, game.Direction(req.Direction)); err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

type itemRequest struct {
	ItemID string `json:"itemId"`
	Slot   string `json:"slot"`
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := s.Engine.Equip(st, req.ItemID); err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

func (s *Server) handleUnequip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := s.Engine.Unequip(st, content.Slot(req.Slot)); err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

func (s *Server) handleUseItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := s.Engine.UseItem(st, req.ItemID); err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

type titleRequest struct {
	TitleID string `json:"titleId"`
}

func (s *Server) handleSelectTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	var req titleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if !st.SetCurrentTitle(req.TitleID) {
		http.Error(w, "title is not unlocked", http.StatusBadRequest)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	var req game.Settings
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	st.UpdateSettings(req)
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, st.Settings)
}
