package services

import (
	"context"
	"strings"

	"github.com/vytor/patternmaster/internal/errors"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
	"github.com/vytor/patternmaster/internal/progress"
	"github.com/vytor/patternmaster/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// UserService handles users and their progress
type UserService interface {
	Upsert(ctx context.Context, user models.User) (*models.User, error)
	Dashboard(ctx context.Context, id string) (*models.UserDashboard, error)
	History(ctx context.Context, id string, limit int) ([]models.CompletedPattern, error)
}

type userService struct {
	userRepo      repository.UserRepository
	completedRepo repository.CompletedPatternRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, completedRepo repository.CompletedPatternRepository) UserService {
	return &userService{userRepo: userRepo, completedRepo: completedRepo}
}

func (s *userService) Upsert(ctx context.Context, user models.User) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("upserting user: id=%s", user.ID)

	user.ID = strings.TrimSpace(user.ID)
	if user.ID == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}

	saved, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return saved, nil
}

// Dashboard loads the user and their full history concurrently and
// summarises the history into progress.
func (s *userService) Dashboard(ctx context.Context, id string) (*models.UserDashboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading dashboard: id=%s", id)

	var (
		user    *models.User
		records []models.CompletedPattern
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.userRepo.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.completedRepo.ListByUser(gctx, id, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load dashboard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return &models.UserDashboard{User: *user, Progress: progress.Summarize(records)}, nil
}

func (s *userService) History(ctx context.Context, id string, limit int) ([]models.CompletedPattern, error) {
	log := logger.FromContext(ctx)

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	log.Debug("listing history: id=%s limit=%d", id, limit)

	records, err := s.completedRepo.ListByUser(ctx, id, limit)
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}
