package repository

import (
	"context"

	"github.com/vytor/patternmaster/internal/models"
)

// CompletedPatternRepository stores the append-only log of finished patterns.
type CompletedPatternRepository interface {
	Insert(ctx context.Context, record models.CompletedPattern) error
	// ExcludedSequences returns the distinct sequences a user has completed,
	// restricted to t unless t is empty.
	ExcludedSequences(ctx context.Context, userID string, t models.PatternType) ([]string, error)
	// ListByUser returns the newest records first; limit <= 0 means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.CompletedPattern, error)
}

// UserRepository handles user data access
type UserRepository interface {
	// Get returns nil, nil when the user does not exist.
	Get(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user models.User) (*models.User, error)
}
