package main

import (
	"context"
	"errors"
	"fmt"

	"refbooks/internal/config"
	"refbooks/internal/memstore"
	"refbooks/internal/pg"
	"refbooks/internal/refbook"
	"refbooks/internal/reference"
	"refbooks/internal/sqlite"
	"refbooks/internal/sqlstore"
)

// openStore открывает хранилище по cfg.DBDriver. migrate: применить DDL
// (для memory не имеет смысла).
func openStore(ctx context.Context, migrate bool) (refbook.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		return memstore.New(), nil
	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		return finishSQL(ctx, sqlstore.New(db, sqlstore.Postgres), migrate)
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return finishSQL(ctx, sqlstore.New(db, sqlstore.SQLite), migrate)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}

func finishSQL(ctx context.Context, s *sqlstore.Store, migrate bool) (refbook.Store, error) {
	if migrate {
		if err := sqlstore.Migrate(ctx, s.DB(), s.Dialect(), logger); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

// seedFrom грузит YAML-справочники из dir в хранилище.
func seedFrom(ctx context.Context, w refbook.Writer, dir string) error {
	st, err := reference.LoadAndSeed(ctx, w, dir)
	if err != nil {
		var le *reference.LintError
		if errors.As(err, &le) {
			for _, it := range le.Issues {
				logger.Error("catalog issue", "issue", it.String())
			}
		}
		return err
	}
	logger.Info("catalogs loaded", "dir", dir,
		"directories", st.Directories, "versions", st.Versions, "elements", st.Elements)
	return nil
}
