// Package hint produces attempt-scaled tutoring hints for a pattern.
package hint

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/llm"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
)

const (
	MinAttempts = 1
	MaxAttempts = 3
)

const (
	OpHint       = "hint completion"
	OpConfidence = "confidence rating"
)

type Settings struct {
	HintModel       string
	ConfidenceModel string
	Timeout         time.Duration
}

// MaxDuration is the longest Hint can spend in provider calls. Both calls
// share Timeout.
func (s Settings) MaxDuration() time.Duration {
	return 2 * s.Timeout
}

type Pipeline struct {
	client   llm.Client
	settings Settings
}

func NewPipeline(client llm.Client, settings Settings) *Pipeline {
	return &Pipeline{client: client, settings: settings}
}

// Hint runs the tutoring call, parses its sections and rates the hint with a
// second call. A failure of either call is returned.
func (p *Pipeline) Hint(ctx context.Context, pattern models.HintPattern, attempt int) (models.AIHint, error) {
	if attempt < MinAttempts || attempt > MaxAttempts {
		return models.AIHint{}, errors.NewValidationError("userAttempts", fmt.Sprintf("must be between %d and %d", MinAttempts, MaxAttempts))
	}
	log := logger.FromContext(ctx).WithPrefix("hint")

	text, err := p.client.Complete(ctx, llm.Request{
		Op:    OpHint,
		Model: p.settings.HintModel,
		Messages: []llm.Message{
			llm.System(SystemPrompt(attempt)),
			llm.User(UserPrompt(pattern, attempt)),
		},
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     p.settings.Timeout,
	})
	if err != nil {
		return models.AIHint{}, err
	}
	sections := ParseSections(text)

	rating, err := p.client.Complete(ctx, llm.Request{
		Op:    OpConfidence,
		Model: p.settings.ConfidenceModel,
		Messages: []llm.Message{
			llm.System(confidenceSystem),
			llm.User(confidencePrompt(pattern.Sequence, sections.Hint)),
		},
		Temperature: 0.3,
		MaxTokens:   10,
		Timeout:     p.settings.Timeout,
	})
	if err != nil {
		return models.AIHint{}, err
	}
	confidence := ParseConfidence(rating)

	log.Debug("hint attempt=%d confidence=%.2f tips=%d", attempt, confidence, len(sections.Tips))
	return models.AIHint{
		Hint:            sections.Hint,
		Confidence:      confidence,
		Reasoning:       sections.Analysis,
		Tips:            sections.Tips,
		RelatedConcepts: sections.RelatedConcepts,
		AttemptNumber:   attempt,
	}, nil
}
