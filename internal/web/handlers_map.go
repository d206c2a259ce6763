package web

import (
	"net/http"

	"yokaiquest/internal/mapgen"
)

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	st, _ := s.getOrCreateState(r.Context(), w, r)

	pdf, err := mapgen.Generate(s.Engine.Content, st.VisitedNodes, st.CurrentNode, "Journey so far")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="journey-map.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		s.Log.Warn("write journey map", "error", err)
	}
}
