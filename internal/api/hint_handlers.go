package api

import (
	"net/http"

	"github.com/vytor/patternmaster/internal/services"
)

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req services.HintRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	h, err := s.HintService.Hint(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h)
}
