package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/patternmaster/internal/db"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
	"github.com/vytor/patternmaster/internal/repository"
)

type userRepository struct {
	db  *db.DB
	sql squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(conn *db.DB) repository.UserRepository {
	return &userRepository{db: conn, sql: conn.Dialect.Builder()}
}

func (r *userRepository) Upsert(ctx context.Context, user models.User) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: id=%s", user.ID)

	query, args, err := r.sql.Insert("users").
		Columns("id", "email", "display_name").
		Values(user.ID, user.Email, user.DisplayName).
		Suffix("ON CONFLICT (id) DO UPDATE SET email = excluded.email, display_name = excluded.display_name").
		ToSql()
	if err != nil {
		log.Error("failed to build upsert query: %v", err)
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	return r.Get(ctx, user.ID)
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%s", id)

	query, args, err := r.sql.Select("id", "email", "display_name", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build get query: %v", err)
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}
