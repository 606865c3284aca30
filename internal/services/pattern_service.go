package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
	"github.com/vytor/patternmaster/internal/pattern"
	"github.com/vytor/patternmaster/internal/repository"
)

// Generator produces a pattern for a request; *pattern.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, req pattern.Request) (pattern.Result, error)
}

type GenerateRequest struct {
	UserID     string `json:"userId"`
	Type       string `json:"type,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// PatternService handles pattern generation and completion records
type PatternService interface {
	Generate(ctx context.Context, req GenerateRequest) (pattern.Result, error)
	RecordCompletion(ctx context.Context, record models.CompletedPattern) (*models.CompletedPattern, error)
	Options(p models.Pattern) []string
}

type patternService struct {
	generator     Generator
	completedRepo repository.CompletedPatternRepository
	exclusions    *lru.Cache[string, []string]
	now           func() time.Time

	// versions counts completions per user. A repository read only fills the
	// cache if no completion for that user landed while it ran.
	mu       sync.Mutex
	versions map[string]uint64
}

// NewPatternService creates a new PatternService. cacheSize bounds the number
// of user/type exclusion lists kept in memory.
func NewPatternService(generator Generator, completedRepo repository.CompletedPatternRepository, cacheSize int) (PatternService, error) {
	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &patternService{
		generator:     generator,
		completedRepo: completedRepo,
		exclusions:    cache,
		now:           func() time.Time { return time.Now().UTC() },
		versions:      make(map[string]uint64),
	}, nil
}

func (s *patternService) Generate(ctx context.Context, req GenerateRequest) (pattern.Result, error) {
	log := logger.FromContext(ctx)

	t := models.RandomPatternType()
	if req.Type != "" {
		parsed, ok := models.ParsePatternType(req.Type)
		if !ok {
			return pattern.Result{}, errors.NewValidationError("type", "must be one of numeric, symbolic, shape, logical")
		}
		t = parsed
	}
	d := models.DifficultyMedium
	if req.Difficulty != "" {
		parsed, ok := models.ParseDifficulty(req.Difficulty)
		if !ok {
			return pattern.Result{}, errors.NewValidationError("difficulty", "must be one of easy, medium, hard")
		}
		d = parsed
	}

	// An unspecified type excludes completions of every type.
	var filter models.PatternType
	if req.Type != "" {
		filter = t
	}
	exclude, err := s.excluded(ctx, req.UserID, filter)
	if err != nil {
		log.Error("failed to load exclusions: %v", err)
		return pattern.Result{}, errors.NewInternalError(err)
	}

	log.Debug("generating pattern: user_id=%s type=%s difficulty=%s exclusions=%d", req.UserID, t, d, len(exclude))
	return s.generator.Generate(ctx, pattern.Request{Type: t, Difficulty: d, Exclude: exclude})
}

func (s *patternService) excluded(ctx context.Context, userID string, t models.PatternType) ([]string, error) {
	if userID == "" {
		return nil, nil
	}
	key := cacheKey(userID, t)
	if seqs, ok := s.exclusions.Get(key); ok {
		return seqs, nil
	}

	s.mu.Lock()
	version := s.versions[userID]
	s.mu.Unlock()

	seqs, err := s.completedRepo.ExcludedSequences(ctx, userID, t)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.versions[userID] == version {
		s.exclusions.Add(key, seqs)
	}
	s.mu.Unlock()
	return seqs, nil
}

func (s *patternService) RecordCompletion(ctx context.Context, record models.CompletedPattern) (*models.CompletedPattern, error) {
	log := logger.FromContext(ctx)

	record.UserID = strings.TrimSpace(record.UserID)
	if record.UserID == "" {
		return nil, errors.NewValidationError("userId", "cannot be empty")
	}
	if strings.TrimSpace(record.Sequence) == "" {
		return nil, errors.NewValidationError("sequence", "cannot be empty")
	}
	t, ok := models.ParsePatternType(string(record.Type))
	if !ok {
		return nil, errors.NewValidationError("type", "must be one of numeric, symbolic, shape, logical")
	}
	record.Type = t
	d := models.DifficultyMedium
	if record.Difficulty != "" {
		if d, ok = models.ParseDifficulty(string(record.Difficulty)); !ok {
			return nil, errors.NewValidationError("difficulty", "must be one of easy, medium, hard")
		}
	}
	record.Difficulty = d
	if record.Attempts < 0 || record.HintsUsed < 0 {
		return nil, errors.NewValidationError("attempts", "cannot be negative")
	}

	record.ID = uuid.NewString()
	if record.CompletedAt.IsZero() {
		record.CompletedAt = s.now()
	}

	if err := s.completedRepo.Insert(ctx, record); err != nil {
		log.Error("failed to store completed pattern: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	s.versions[record.UserID]++
	s.exclusions.Remove(cacheKey(record.UserID, record.Type))
	s.exclusions.Remove(cacheKey(record.UserID, ""))
	s.mu.Unlock()

	log.Info("pattern completed: user_id=%s id=%s type=%s correct=%t", record.UserID, record.ID, record.Type, record.Correct)
	return &record, nil
}

func (s *patternService) Options(p models.Pattern) []string {
	return pattern.Options(p, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func cacheKey(userID string, t models.PatternType) string {
	return userID + "|" + string(t)
}
