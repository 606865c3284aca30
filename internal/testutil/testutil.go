package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/patternmaster/internal/db"
)

// NewTestDB opens an in-memory SQLite store with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	conn, err := db.Open(context.Background(), db.SQLite, ":memory:")
	require.NoError(t, err)
	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
