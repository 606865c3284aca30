// Package sqlstore implements the repositories on database/sql for both the
// SQLite and Postgres dialects.
package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/patternmaster/internal/db"
	"github.com/vytor/patternmaster/internal/logger"
	"github.com/vytor/patternmaster/internal/models"
	"github.com/vytor/patternmaster/internal/repository"
)

var completedColumns = []string{
	"id", "user_id", "sequence", "answer", "type", "difficulty", "hint",
	"explanation", "correct", "attempts", "hints_used", "score", "completed_at",
}

type completedPatternRepository struct {
	db  *db.DB
	sql squirrel.StatementBuilderType
}

// NewCompletedPatternRepository creates a new CompletedPatternRepository implementation
func NewCompletedPatternRepository(conn *db.DB) repository.CompletedPatternRepository {
	return &completedPatternRepository{db: conn, sql: conn.Dialect.Builder()}
}

func (r *completedPatternRepository) Insert(ctx context.Context, rec models.CompletedPattern) error {
	log := logger.FromContext(ctx).WithPrefix("completed_repo")
	log.Debug("inserting completed pattern: id=%s user_id=%s", rec.ID, rec.UserID)

	query, args, err := r.sql.Insert("completed_patterns").
		Columns(completedColumns...).
		Values(
			rec.ID, rec.UserID, rec.Sequence, rec.Answer, string(rec.Type), string(rec.Difficulty), rec.Hint,
			rec.Explanation, rec.Correct, rec.Attempts, rec.HintsUsed, rec.Score, rec.CompletedAt,
		).ToSql()
	if err != nil {
		log.Error("failed to build insert query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert completed pattern: %v", err)
		return err
	}
	return nil
}

func (r *completedPatternRepository) ExcludedSequences(ctx context.Context, userID string, t models.PatternType) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("completed_repo")
	log.Debug("loading excluded sequences: user_id=%s type=%s", userID, t)

	q := r.sql.Select("sequence").
		From("completed_patterns").
		Where(squirrel.Eq{"user_id": userID})
	if t != "" {
		q = q.Where(squirrel.Eq{"type": string(t)})
	}
	query, args, err := q.GroupBy("sequence").OrderBy("MIN(completed_at) ASC").ToSql()
	if err != nil {
		log.Error("failed to build exclusion query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query excluded sequences: %v", err)
		return nil, err
	}
	defer rows.Close()

	sequences := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			log.Error("failed to scan sequence: %v", err)
			return nil, err
		}
		sequences = append(sequences, s)
	}

	log.Debug("found %d excluded sequences", len(sequences))
	return sequences, rows.Err()
}

func (r *completedPatternRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.CompletedPattern, error) {
	log := logger.FromContext(ctx).WithPrefix("completed_repo")
	log.Debug("listing completed patterns: user_id=%s limit=%d", userID, limit)

	q := r.sql.Select(completedColumns...).
		From("completed_patterns").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("completed_at DESC", "id ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list completed patterns: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := []models.CompletedPattern{}
	for rows.Next() {
		var (
			rec        models.CompletedPattern
			typ, level string
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Sequence, &rec.Answer, &typ, &level, &rec.Hint,
			&rec.Explanation, &rec.Correct, &rec.Attempts, &rec.HintsUsed, &rec.Score, &rec.CompletedAt,
		); err != nil {
			log.Error("failed to scan completed pattern row: %v", err)
			return nil, err
		}
		rec.Type = models.PatternType(typ)
		rec.Difficulty = models.Difficulty(level)
		records = append(records, rec)
	}

	log.Debug("found %d completed patterns", len(records))
	return records, rows.Err()
}
