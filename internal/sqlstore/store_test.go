package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"refbooks/internal/refbook"
	"refbooks/internal/refbook/storetest"
	"refbooks/internal/sqlite"
	"refbooks/internal/sqlstore"
)

func newSQLiteStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.Memory)
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.SQLite, nil))
	return sqlstore.New(db, sqlstore.SQLite)
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &storetest.StoreSuite{
		NewStore: func(t *testing.T) refbook.Store { return newSQLiteStore(t) },
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	defer s.Close()

	require.NoError(t, sqlstore.Migrate(ctx, s.DB(), sqlstore.SQLite, nil))

	fx := storetest.SeedFixture(t, s)
	require.NoError(t, sqlstore.Migrate(ctx, s.DB(), sqlstore.SQLite, nil))

	got, err := s.GetDirectory(ctx, fx.A.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.A, got)
}

func TestSQLiteFileStore(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/nested/refbooks.db"

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.SQLite, nil))
	s := sqlstore.New(db, sqlstore.SQLite)
	fx := storetest.SeedFixture(t, s)
	require.NoError(t, s.Close())

	// после переоткрытия данные на месте
	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	s = sqlstore.New(db, sqlstore.SQLite)
	defer s.Close()

	elems, err := s.ListElements(ctx, refbook.ElementFilter{VersionID: fx.A11.ID})
	require.NoError(t, err)
	assert.Len(t, elems, 3)
}
