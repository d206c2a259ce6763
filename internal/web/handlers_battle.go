package web

import (
	"net/http"

	"yokaiquest/internal/game"
)

type attackRequest struct {
	Values []int `json:"values"`
}

type battleResponse struct {
	Damage  int                `json:"damage"`
	Outcome game.BattleOutcome `json:"outcome,omitempty"`
	State   StateView          `json:"state"`
}

// handleAttack resolves the player's settled roll. When the hit is
// lethal the battle ends within the same request, before the enemy
// could ever act again.
func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	var req attackRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	// Stage the roll on the ledger, then resolve it from there.
	st.SetDiceResults(req.Values)
	damage, err := s.Engine.ProcessPlayerAttack(st, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	outcome := s.Engine.CheckBattleEnd(st)
	if outcome != game.OutcomeNone {
		s.Engine.EndBattle(st, outcome)
	}

	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, battleResponse{Damage: damage, Outcome: outcome, State: s.stateView(st)})
}

func (s *Server) handleDefend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	if err := s.Engine.Defend(st); err != nil {
		writeError(w, err)
		return
	}
	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, s.stateView(st))
}

// handleEnemyTurn is the driver tick for the enemy half of the round.
func (s *Server) handleEnemyTurn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)

	damage, err := s.Engine.ProcessEnemyAttack(st)
	if err != nil {
		writeError(w, err)
		return
	}
	outcome := s.Engine.CheckBattleEnd(st)
	if outcome != game.OutcomeNone {
		s.Engine.EndBattle(st, outcome)
	}

	s.persist(ctx, id, st)
	writeJSON(w, http.StatusOK, battleResponse{Damage: damage, Outcome: outcome, State: s.stateView(st)})
}
