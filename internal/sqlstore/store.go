// Package sqlstore: хранилище справочников поверх database/sql (postgres, sqlite).
// Ограничения уникальности и каскады живут в схеме БД; ошибки драйвера переводятся
// в ошибки пакета refbook.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"refbooks/internal/refbook"
)

type Store struct {
	db *sql.DB
	d  Dialect
}

var _ refbook.Store = (*Store)(nil)

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Dialect() Dialect { return s.d }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

// query собирает where-условия с плейсхолдерами нужного диалекта.
type query struct {
	d     Dialect
	conds []string
	args  []any
}

func (q *query) where(cond string, arg any) {
	q.args = append(q.args, arg)
	q.conds = append(q.conds, strings.ReplaceAll(cond, "?", q.d.Placeholder(len(q.args))))
}

func (q *query) clause() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " where " + strings.Join(q.conds, " and ")
}

func (s *Store) ListDirectories(ctx context.Context, cutoff *refbook.Date) ([]refbook.Directory, error) {
	q := &query{d: s.d}
	if cutoff != nil {
		// exists, а не join: справочник попадает в выдачу один раз
		q.where(`exists (select 1 from ref_book_versions v where v.ref_book_id = b.id and v.start_date <= ?)`, *cutoff)
	}
	rows, err := s.db.QueryContext(ctx,
		`select b.id, b.code, b.name, b.description from ref_books b`+q.clause()+` order by b.id`, q.args...)
	if err != nil {
		return nil, fmt.Errorf("select ref_books: %w", err)
	}
	defer rows.Close()

	out := make([]refbook.Directory, 0)
	for rows.Next() {
		d, err := scanDirectory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDirectory(r scanner) (refbook.Directory, error) {
	var (
		d    refbook.Directory
		desc sql.NullString
	)
	if err := r.Scan(&d.ID, &d.Code, &d.Name, &desc); err != nil {
		return refbook.Directory{}, err
	}
	if desc.Valid {
		d.Description = &desc.String
	}
	return d, nil
}

func (s *Store) GetDirectory(ctx context.Context, id int64) (refbook.Directory, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, code, name, description from ref_books where id = `+s.d.Placeholder(1), id)
	d, err := scanDirectory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return refbook.Directory{}, fmt.Errorf("directory %d: %w", id, refbook.ErrNotFound)
	}
	if err != nil {
		return refbook.Directory{}, fmt.Errorf("select ref_book %d: %w", id, err)
	}
	return d, nil
}

func (s *Store) ListVersions(ctx context.Context, f refbook.VersionFilter) ([]refbook.Version, error) {
	q := &query{d: s.d}
	q.where(`ref_book_id = ?`, f.DirectoryID)
	if f.Label != "" {
		q.where(`version = ?`, f.Label)
	}
	if f.StartedBy != nil {
		q.where(`start_date <= ?`, *f.StartedBy)
	}
	rows, err := s.db.QueryContext(ctx,
		`select id, ref_book_id, version, start_date from ref_book_versions`+q.clause()+
			` order by (start_date is not null), start_date, id`, q.args...)
	if err != nil {
		return nil, fmt.Errorf("select ref_book_versions: %w", err)
	}
	defer rows.Close()

	var out []refbook.Version
	for rows.Next() {
		var (
			v  refbook.Version
			sd refbook.NullDate
		)
		if err := rows.Scan(&v.ID, &v.DirectoryID, &v.Label, &sd); err != nil {
			return nil, err
		}
		v.StartDate = sd.Ptr()
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) ListElements(ctx context.Context, f refbook.ElementFilter) ([]refbook.Element, error) {
	q := &query{d: s.d}
	if f.VersionID != 0 {
		q.where(`ref_book_version_id = ?`, f.VersionID)
	}
	if f.Code != "" {
		q.where(`code = ?`, f.Code)
	}
	if f.Value != "" {
		q.where(`value = ?`, f.Value)
	}
	rows, err := s.db.QueryContext(ctx,
		`select id, ref_book_version_id, code, value from ref_book_elements`+q.clause()+` order by id`, q.args...)
	if err != nil {
		return nil, fmt.Errorf("select ref_book_elements: %w", err)
	}
	defer rows.Close()

	out := make([]refbook.Element, 0)
	for rows.Next() {
		var e refbook.Element
		if err := rows.Scan(&e.ID, &e.VersionID, &e.Code, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) CreateDirectory(ctx context.Context, d *refbook.Directory) error {
	var desc sql.NullString
	if d.Description != nil {
		desc = sql.NullString{String: *d.Description, Valid: true}
	}
	return s.insert(ctx, &d.ID,
		fmt.Sprintf(`insert into ref_books (code, name, description) values (%s, %s, %s) returning id`,
			s.d.Placeholder(1), s.d.Placeholder(2), s.d.Placeholder(3)),
		d.Code, d.Name, desc)
}

func (s *Store) CreateVersion(ctx context.Context, v *refbook.Version) error {
	return s.insert(ctx, &v.ID,
		fmt.Sprintf(`insert into ref_book_versions (ref_book_id, version, start_date) values (%s, %s, %s) returning id`,
			s.d.Placeholder(1), s.d.Placeholder(2), s.d.Placeholder(3)),
		v.DirectoryID, v.Label, refbook.NullDateOf(v.StartDate))
}

func (s *Store) CreateElement(ctx context.Context, e *refbook.Element) error {
	return s.insert(ctx, &e.ID,
		fmt.Sprintf(`insert into ref_book_elements (ref_book_version_id, code, value) values (%s, %s, %s) returning id`,
			s.d.Placeholder(1), s.d.Placeholder(2), s.d.Placeholder(3)),
		e.VersionID, e.Code, e.Value)
}

func (s *Store) insert(ctx context.Context, id *int64, stmt string, args ...any) error {
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(id); err != nil {
		if name, ok := s.d.uniqueViolation(err); ok {
			return &refbook.ConflictError{Constraint: name, Err: err}
		}
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func (s *Store) DeleteDirectory(ctx context.Context, id int64) error {
	return s.delete(ctx, tableBooks, id)
}

func (s *Store) DeleteVersion(ctx context.Context, id int64) error {
	return s.delete(ctx, tableVersions, id)
}

// каскад выполняет сама БД (on delete cascade)
func (s *Store) delete(ctx context.Context, table string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`delete from %s where id = %s`, sqlIdent(table), s.d.Placeholder(1)), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", table, id, refbook.ErrNotFound)
	}
	return nil
}
