package migrate_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/carcarepro/carcare-ui/internal/migrate"
	"github.com/carcarepro/carcare-ui/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAppliesAllMigrations(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()

		// SetupTestDB already ran migrations; a second run must be a no-op.
		require.NoError(t, migrate.Run(ctx, db))

		var applied int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT count(*) FROM schema_migrations`,
		).Scan(&applied))
		assert.Equal(t, 2, applied)

		for _, table := range []string{"users", "maintenance_status", "service_history"} {
			var exists bool
			require.NoError(t, db.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
				table,
			).Scan(&exists))
			assert.True(t, exists, "table %s should exist", table)
		}
	})
}
