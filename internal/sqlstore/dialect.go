package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"refbooks/internal/refbook"
)

// Dialect: различия postgres и sqlite, которые видит хранилище.
type Dialect struct {
	Name string
	// Placeholder возвращает n-й (с 1) плейсхолдер параметра.
	Placeholder func(n int) string
	// типы колонок
	IDType  string
	RefType string
	// uniqueViolation распознаёт нарушение уникальности и имя ограничения.
	uniqueViolation func(err error) (string, bool)
	// alreadyExists: ошибка DDL "объект уже есть" (повторное применение).
	alreadyExists func(err error) bool
}

var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	IDType:      "bigserial primary key",
	RefType:     "bigint",
	uniqueViolation: func(err error) (string, bool) {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return pgErr.ConstraintName, true
		}
		return "", false
	},
	alreadyExists: func(err error) bool {
		var pgErr *pgconn.PgError
		// 42710 duplicate_object, 42P07 duplicate_table
		return errors.As(err, &pgErr) && (pgErr.Code == "42710" || pgErr.Code == "42P07")
	},
}

var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	IDType:      "integer primary key autoincrement",
	RefType:     "integer",
	uniqueViolation: func(err error) (string, bool) {
		var se *sqlite.Error
		if !errors.As(err, &se) {
			return "", false
		}
		if se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
			return "", false
		}
		msg := se.Error()
		if !strings.Contains(msg, "UNIQUE constraint failed") {
			return "", false
		}
		return sqliteConstraintName(msg), true
	},
	alreadyExists: func(err error) bool {
		return strings.Contains(strings.ToLower(err.Error()), "already exists")
	},
}

// sqlite не сообщает имя ограничения, только колонки: "UNIQUE constraint failed: t.a, t.b".
func sqliteConstraintName(msg string) string {
	switch {
	case strings.Contains(msg, tableVersions+".start_date"):
		return refbook.ConstraintVersionStartDate
	case strings.Contains(msg, tableVersions+".version"):
		return refbook.ConstraintVersionLabel
	case strings.Contains(msg, tableElements+".code"):
		return refbook.ConstraintElementCode
	case strings.Contains(msg, tableBooks+".code"):
		return refbook.ConstraintDirectoryCode
	}
	if i := strings.Index(msg, "failed: "); i >= 0 {
		return strings.TrimSpace(msg[i+len("failed: "):])
	}
	return msg
}

// DialectByName: "postgres" | "sqlite".
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "pg", "postgresql":
		return Postgres, true
	case "sqlite", "sqlite3":
		return SQLite, true
	}
	return Dialect{}, false
}
