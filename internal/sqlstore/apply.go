package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// ApplyDDL выполняет карту из GenerateDDL в порядке ключей. Ожидается idempotent DDL;
// "уже существует" пропускаем.
func ApplyDDL(ctx context.Context, db *sql.DB, d Dialect, ddl map[string]string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			if d.alreadyExists(err) {
				logger.InfoContext(ctx, "DDL skipped (already exists)", "key", k, "err", err)
				continue
			}
			return fmt.Errorf("DDL apply failed (%s): %w", k, err)
		}
		logger.DebugContext(ctx, "DDL applied", "key", k, "dialect", d.Name)
	}
	return nil
}

// Migrate: GenerateDDL + ApplyDDL.
func Migrate(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	return ApplyDDL(ctx, db, d, GenerateDDL(d), logger)
}
