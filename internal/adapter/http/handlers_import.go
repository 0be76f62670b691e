package adapthttp

import (
	"net/http"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/app"
)

type importRequest struct {
	CSV            string `json:"csv"`
	Unit           string `json:"unit"`
	SkipDuplicates *bool  `json:"skipDuplicates"`
}

func (r importRequest) options() app.ImportOptions {
	opts := app.ImportOptions{Unit: r.Unit, SkipDuplicates: true}
	if opts.Unit == "" {
		opts.Unit = "kg"
	}
	if r.SkipDuplicates != nil {
		opts.SkipDuplicates = *r.SkipDuplicates
	}
	return opts
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// An empty csv string is not a transport error; it surfaces as a
	// parse error in the outcome.
	outcome, err := s.imports.ImportCSV(r.Context(), s.userID(r), req.CSV, req.options())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.imports.Preview(req.CSV))
}
