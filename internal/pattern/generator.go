// Package pattern turns a requested type and difficulty into a validated
// puzzle, with a simplified fallback when the primary path fails.
package pattern

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/llm"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
)

// Op labels passed to the gateway, used in errors and logs.
const (
	OpPrimary  = "pattern completion"
	OpValidate = "pattern validation"
	OpFallback = "fallback completion"
)

const (
	symbolicTimeout   = 8 * time.Second
	defaultTimeout    = 10 * time.Second
	symbolicMaxTokens = 150
	defaultMaxTokens  = 200
	fallbackMaxTokens = 100
)

type Settings struct {
	PatternModel   string
	ValidatorModel string
	// MaxValidationRetries bounds primary attempts for symbolic patterns
	// the validator rejects.
	MaxValidationRetries int
	FallbackTimeout      time.Duration
}

// MaxDuration is the longest Generate can spend in provider calls: every
// primary attempt validated and rejected, then the fallback.
func (s Settings) MaxDuration() time.Duration {
	retries := max(s.MaxValidationRetries, 1)
	fallback := s.FallbackTimeout
	if fallback <= 0 {
		fallback = defaultTimeout
	}
	attempts := max(time.Duration(retries)*(symbolicTimeout+validatorTimeout), defaultTimeout)
	return attempts + fallback
}

type Request struct {
	Type       models.PatternType
	Difficulty models.Difficulty
	Exclude    []string
}

// Result is a generated pattern. Degraded is set when the pattern came from
// the fallback prompt, with Cause holding the primary failure.
type Result struct {
	Pattern  models.Pattern
	Degraded bool
	Cause    error
}

type Generator struct {
	client    llm.Client
	validator *Validator
	settings  Settings
}

func NewGenerator(client llm.Client, settings Settings) *Generator {
	if settings.MaxValidationRetries < 1 {
		settings.MaxValidationRetries = 1
	}
	if settings.FallbackTimeout <= 0 {
		settings.FallbackTimeout = defaultTimeout
	}
	return &Generator{
		client:    client,
		validator: NewValidator(client, settings.ValidatorModel),
		settings:  settings,
	}
}

// Generate runs the primary path and, for any failure other than a timeout,
// the fallback. A primary timeout is returned as a request timeout error.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	log := logger.FromContext(ctx).WithPrefix("pattern").WithFields(map[string]any{
		"type":       req.Type,
		"difficulty": req.Difficulty,
	})

	for attempt := 1; ; attempt++ {
		p, err := g.primary(ctx, req)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeTimeout) {
				log.Warn("primary generation timed out")
				return Result{}, errors.NewRequestTimeoutError(err)
			}
			log.WithError(err).Warn("primary generation failed, using fallback")
			return g.fallback(ctx, req, err)
		}

		if req.Type != models.PatternSymbolic || g.validator.Accept(ctx, p) {
			log.Debug("generated pattern attempt=%d sequence=%q", attempt, p.Sequence)
			return Result{Pattern: p}, nil
		}

		if attempt >= g.settings.MaxValidationRetries {
			cause := errors.NewValidationRejectedError(p.Sequence, attempt)
			log.Warn("validator rejected %d patterns, using fallback", attempt)
			return g.fallback(ctx, req, cause)
		}
		log.Debug("validator rejected sequence=%q, retrying", p.Sequence)
	}
}

func (g *Generator) primary(ctx context.Context, req Request) (models.Pattern, error) {
	timeout, maxTokens := defaultTimeout, defaultMaxTokens
	if req.Type == models.PatternSymbolic {
		timeout, maxTokens = symbolicTimeout, symbolicMaxTokens
	}

	text, err := g.client.Complete(ctx, llm.Request{
		Op:    OpPrimary,
		Model: g.settings.PatternModel,
		Messages: []llm.Message{
			llm.System(SystemPrompt(req.Exclude)),
			llm.User(UserPrompt(req.Type, req.Difficulty)),
		},
		Temperature:      0.9,
		PresencePenalty:  1.0,
		FrequencyPenalty: 1.0,
		MaxTokens:        maxTokens,
		Timeout:          timeout,
	})
	if err != nil {
		return models.Pattern{}, err
	}
	return g.assemble(text, req)
}

func (g *Generator) fallback(ctx context.Context, req Request, cause error) (Result, error) {
	system, user := FallbackPrompts(req.Type, req.Difficulty)
	text, err := g.client.Complete(ctx, llm.Request{
		Op:          OpFallback,
		Model:       g.settings.PatternModel,
		Messages:    []llm.Message{llm.System(system), llm.User(user)},
		Temperature: 0.5,
		MaxTokens:   fallbackMaxTokens,
		Timeout:     g.settings.FallbackTimeout,
	})
	if err != nil {
		logger.FromContext(ctx).WithPrefix("pattern").WithError(err).Error("fallback generation failed")
		return Result{}, errors.NewGenerationFailedError(fmt.Errorf("primary: %v; fallback: %w", cause, err))
	}

	p, err := g.assemble(text, req)
	if err != nil {
		return Result{}, errors.NewGenerationFailedError(fmt.Errorf("primary: %v; fallback: %w", cause, err))
	}
	return Result{Pattern: p, Degraded: true, Cause: cause}, nil
}

// assemble parses text and stamps the requested type and difficulty over
// whatever the model echoed back.
func (g *Generator) assemble(text string, req Request) (models.Pattern, error) {
	p, err := Parse(text)
	if err != nil {
		return models.Pattern{}, err
	}
	p.Type = req.Type
	p.Difficulty = req.Difficulty
	return p, nil
}
