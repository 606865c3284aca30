package services

import (
	"context"
	"strings"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
)

// HintPipeline produces a hint; *hint.Pipeline satisfies it.
type HintPipeline interface {
	Hint(ctx context.Context, p models.HintPattern, attempt int) (models.AIHint, error)
}

type HintRequest struct {
	Pattern      models.HintPattern `json:"pattern"`
	UserAttempts int                `json:"userAttempts"`
}

// HintService handles AI hint requests
type HintService interface {
	Hint(ctx context.Context, req HintRequest) (*models.AIHint, error)
}

type hintService struct {
	pipeline HintPipeline
}

// NewHintService creates a new HintService
func NewHintService(pipeline HintPipeline) HintService {
	return &hintService{pipeline: pipeline}
}

func (s *hintService) Hint(ctx context.Context, req HintRequest) (*models.AIHint, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.Pattern.Sequence) == "" {
		return nil, errors.NewValidationError("pattern.sequence", "cannot be empty")
	}

	h, err := s.pipeline.Hint(ctx, req.Pattern, req.UserAttempts)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeValidation) {
			return nil, err
		}
		log.Error("failed to generate hint: %v", err)
		return nil, errors.WithMessage(err, "Error generating hint")
	}
	return &h, nil
}
