package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t,
		"fyyur:secret@tcp(db:3306)/fyyur?charset=utf8mb4&parseTime=true&loc=UTC",
		MySQLDSN("fyyur", "secret", "db", "3306", "fyyur"))
	assert.Equal(t,
		"root@tcp(localhost:3306)/fyyur?charset=utf8mb4&parseTime=true&loc=UTC",
		MySQLDSN("root", "", "localhost", "3306", "fyyur"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "whatever")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(DriverSQLite, SQLiteDSN(filepath.Join(t.TempDir(), "m.db")))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, DriverSQLite))
	require.NoError(t, Migrate(ctx, db, DriverSQLite))

	for _, table := range []string{"Venue", "Artist", "Show"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrateEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	db, err := Open(DriverSQLite, SQLiteDSN(filepath.Join(t.TempDir(), "fk.db")))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(ctx, db, DriverSQLite))

	_, err = db.ExecContext(ctx,
		"INSERT INTO `Show` (artist_id, venue_id, start_time) VALUES (?, ?, ?)", 1, 1, "2030-01-01 00:00:00")
	assert.Error(t, err, "dangling references must be rejected")
}

func TestMigrateUnknownDriver(t *testing.T) {
	assert.Error(t, Migrate(context.Background(), nil, "oracle"))
}
