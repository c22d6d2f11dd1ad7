package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/waypoint/migrations"
	"github.com/pkordes/waypoint/testutil"
)

var schemaTables = []string{"trips", "activities"}

// TestMigrations applies every migration, checks the schema, rolls back to
// version 0 and checks that nothing is left.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := migrations.NewProvider(db)
	require.NoError(t, err)

	// Other packages may have migrated the shared database already.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.Len(t, results, 2)
	for _, table := range schemaTables {
		assert.True(t, tableExists(t, db, table), "table %q should exist", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	for _, table := range schemaTables {
		assert.False(t, tableExists(t, db, table), "table %q should be dropped", table)
	}

	// Leave the schema in place for whichever package runs next.
	n, err := migrations.Up(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}
