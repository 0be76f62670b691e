package adapthttp

import (
	"net/http"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 90)
	window := intQuery(r, "window", 7)

	prog, err := s.progress.GetProgress(r.Context(), s.userID(r), days, window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}
