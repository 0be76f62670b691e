package adapthttp

import (
	"net/http"
)

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 30)

	insight, err := s.insights.WeightInsight(r.Context(), s.userID(r), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, insight)
}
