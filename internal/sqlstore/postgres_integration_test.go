//go:build integration

package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"refbooks/internal/pg"
	"refbooks/internal/refbook"
	"refbooks/internal/refbook/storetest"
	"refbooks/internal/sqlstore"
)

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("refbooks"),
		tcpostgres.WithUsername("refbooks"),
		tcpostgres.WithPassword("refbooks"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pg.Open(ctx, url)
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.Postgres, nil))
	// повторное применение не падает
	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.Postgres, nil))
	require.NoError(t, db.Close())

	suite.Run(t, &storetest.StoreSuite{
		NewStore: func(t *testing.T) refbook.Store {
			db, err := pg.Open(ctx, url)
			require.NoError(t, err)
			_, err = db.ExecContext(ctx, `truncate ref_books, ref_book_versions, ref_book_elements restart identity cascade`)
			require.NoError(t, err)
			return sqlstore.New(db, sqlstore.Postgres)
		},
	})
}
