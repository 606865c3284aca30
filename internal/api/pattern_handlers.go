package api

import (
	"net/http"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/models"
	"github.com/vytor/patternmaster/internal/services"
)

type fallbackBody struct {
	Error    string         `json:"error"`
	Details  string         `json:"details"`
	Fallback models.Pattern `json:"fallback"`
}

type optionsBody struct {
	Options []string `json:"options"`
}

func (s *Server) handleGeneratePattern(w http.ResponseWriter, r *http.Request) {
	var req services.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.PatternService.Generate(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if res.Degraded {
		writeJSON(w, r, http.StatusInternalServerError, fallbackBody{
			Error:    "Error generating primary pattern",
			Details:  errors.Details(res.Cause),
			Fallback: res.Pattern,
		})
		return
	}
	writeJSON(w, r, http.StatusOK, res.Pattern)
}

func (s *Server) handleCompletePattern(w http.ResponseWriter, r *http.Request) {
	var rec models.CompletedPattern
	if err := decodeJSON(r, &rec); err != nil {
		handleError(w, r, err)
		return
	}

	saved, err := s.PatternService.RecordCompletion(r.Context(), rec)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, saved)
}

func (s *Server) handlePatternOptions(w http.ResponseWriter, r *http.Request) {
	var p models.Pattern
	if err := decodeJSON(r, &p); err != nil {
		handleError(w, r, err)
		return
	}
	if p.Answer == "" {
		handleError(w, r, errors.NewValidationError("answer", "cannot be empty"))
		return
	}
	writeJSON(w, r, http.StatusOK, optionsBody{Options: s.PatternService.Options(p)})
}
