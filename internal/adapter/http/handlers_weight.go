package adapthttp

import (
	"net/http"
)

func (s *Server) handleWeightCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Weight float64 `json:"weight"`
		Unit   string  `json:"unit"`
		Notes  string  `json:"notes"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.weight.RecordWeight(r.Context(), s.userID(r), body.Weight, body.Unit, body.Notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 14)
	items, err := s.weight.ListRecent(r.Context(), s.userID(r), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWeightUndoLast(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.weight.UndoLast(r.Context(), s.userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
