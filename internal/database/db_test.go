package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func countSessions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM stopwatch_sessions").Scan(&n))
	return n
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	insert := func(id string) func(tx *sql.Tx) error {
		return func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO stopwatch_sessions (id, elapsed_ms, recorded_at) VALUES (?, ?, ?)", id, 42, Now())
			return err
		}
	}

	require.NoError(t, WithTx(ctx, db, insert("a")))
	require.Equal(t, 1, countSessions(t, db))

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		require.NoError(t, insert("b")(tx))
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, countSessions(t, db))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, WithTx(cancelled, db, insert("c")))
	require.Equal(t, 1, countSessions(t, db))
}
