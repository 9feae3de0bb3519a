package sqlstore

import (
	"fmt"
	"strings"

	"refbooks/internal/refbook"
)

const (
	tableBooks    = "ref_books"
	tableVersions = "ref_book_versions"
	tableElements = "ref_book_elements"
)

// GenerateDDL возвращает карту ключ -> один SQL-оператор. Ключи задают порядок
// применения (ApplyDDL сортирует их): сначала таблицы по зависимостям, потом индексы.
// Всё идемпотентно: create ... if not exists.
func GenerateDDL(d Dialect) map[string]string {
	out := make(map[string]string, 4)

	out["000_"+tableBooks] = createTable(tableBooks,
		`"id" `+d.IDType,
		`"code" varchar(100) not null`,
		`"name" varchar(300) not null`,
		`"description" text null`,
		unique(refbook.ConstraintDirectoryCode, "code"),
	)

	// Уникальность (ref_book_id, start_date): NULL-даты не конфликтуют друг с другом.
	out["010_"+tableVersions] = createTable(tableVersions,
		`"id" `+d.IDType,
		fmt.Sprintf(`"ref_book_id" %s not null references %s(id) on delete cascade`, d.RefType, sqlIdent(tableBooks)),
		`"version" varchar(50) not null`,
		`"start_date" date null`,
		unique(refbook.ConstraintVersionLabel, "ref_book_id", "version"),
		unique(refbook.ConstraintVersionStartDate, "ref_book_id", "start_date"),
	)

	// (ref_book_version_id, code) служит и ограничением, и основным индексом поиска.
	out["020_"+tableElements] = createTable(tableElements,
		`"id" `+d.IDType,
		fmt.Sprintf(`"ref_book_version_id" %s not null references %s(id) on delete cascade`, d.RefType, sqlIdent(tableVersions)),
		`"code" varchar(100) not null`,
		`"value" varchar(300) not null`,
		unique(refbook.ConstraintElementCode, "ref_book_version_id", "code"),
	)

	out["100_"+tableElements+"_value_idx"] = fmt.Sprintf(
		"create index if not exists %s on %s(%s, %s)",
		sqlIdent(tableElements+"_value_idx"), sqlIdent(tableElements),
		sqlIdent("ref_book_version_id"), sqlIdent("value"))

	return out
}

func createTable(name string, cols ...string) string {
	return fmt.Sprintf("create table if not exists %s (\n  %s\n)", sqlIdent(name), strings.Join(cols, ",\n  "))
}

func unique(name string, cols ...string) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, sqlIdent(c))
	}
	return fmt.Sprintf("constraint %s unique (%s)", sqlIdent(name), strings.Join(parts, ", "))
}

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }
