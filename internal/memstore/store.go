// Package memstore: in-memory хранилище справочников. Ограничения уникальности и
// каскадное удаление проверяются здесь же, под мьютексом.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"refbooks/internal/refbook"
)

type Store struct {
	mu       sync.RWMutex
	books    map[int64]*refbook.Directory
	versions map[int64]*refbook.Version
	elements map[int64]*refbook.Element
	seq      int64 // общий счётчик id: порядок создания = порядок id
}

var _ refbook.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		books:    make(map[int64]*refbook.Directory),
		versions: make(map[int64]*refbook.Version),
		elements: make(map[int64]*refbook.Element),
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) ListDirectories(_ context.Context, cutoff *refbook.Date) ([]refbook.Directory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]refbook.Directory, 0, len(s.books))
	for _, d := range s.books {
		if cutoff != nil && !s.hasVersionStartedByLocked(d.ID, *cutoff) {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) hasVersionStartedByLocked(directoryID int64, cutoff refbook.Date) bool {
	f := refbook.VersionFilter{DirectoryID: directoryID, StartedBy: &cutoff}
	for _, v := range s.versions {
		if f.Match(*v) {
			return true
		}
	}
	return false
}

func (s *Store) GetDirectory(_ context.Context, id int64) (refbook.Directory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.books[id]
	if !ok {
		return refbook.Directory{}, fmt.Errorf("directory %d: %w", id, refbook.ErrNotFound)
	}
	return *d, nil
}

func (s *Store) ListVersions(_ context.Context, f refbook.VersionFilter) ([]refbook.Version, error) {
	s.mu.RLock()
	var out []refbook.Version
	for _, v := range s.versions {
		if f.Match(*v) {
			out = append(out, *v)
		}
	}
	s.mu.RUnlock()

	// NULL-даты в начале, затем по дате, затем по id
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.StartDate == nil) != (b.StartDate == nil) {
			return a.StartDate == nil
		}
		if a.StartDate != nil {
			if c := a.StartDate.Compare(*b.StartDate); c != 0 {
				return c < 0
			}
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (s *Store) ListElements(_ context.Context, f refbook.ElementFilter) ([]refbook.Element, error) {
	s.mu.RLock()
	out := make([]refbook.Element, 0)
	for _, e := range s.elements {
		if f.Match(*e) {
			out = append(out, *e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateDirectory(_ context.Context, d *refbook.Directory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.books {
		if other.Code == d.Code {
			return &refbook.ConflictError{Constraint: refbook.ConstraintDirectoryCode}
		}
	}
	d.ID = s.nextID()
	cp := *d
	s.books[d.ID] = &cp
	return nil
}

func (s *Store) CreateVersion(_ context.Context, v *refbook.Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[v.DirectoryID]; !ok {
		return fmt.Errorf("directory %d: %w", v.DirectoryID, refbook.ErrNotFound)
	}
	for _, other := range s.versions {
		if other.DirectoryID != v.DirectoryID {
			continue
		}
		if other.Label == v.Label {
			return &refbook.ConflictError{Constraint: refbook.ConstraintVersionLabel}
		}
		// NULL не равен NULL, как в SQL
		if other.StartDate != nil && v.StartDate != nil && other.StartDate.Compare(*v.StartDate) == 0 {
			return &refbook.ConflictError{Constraint: refbook.ConstraintVersionStartDate}
		}
	}
	v.ID = s.nextID()
	cp := *v
	if v.StartDate != nil {
		sd := *v.StartDate
		cp.StartDate = &sd
	}
	s.versions[v.ID] = &cp
	return nil
}

func (s *Store) CreateElement(_ context.Context, e *refbook.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.versions[e.VersionID]; !ok {
		return fmt.Errorf("version %d: %w", e.VersionID, refbook.ErrNotFound)
	}
	for _, other := range s.elements {
		if other.VersionID == e.VersionID && other.Code == e.Code {
			return &refbook.ConflictError{Constraint: refbook.ConstraintElementCode}
		}
	}
	e.ID = s.nextID()
	cp := *e
	s.elements[e.ID] = &cp
	return nil
}

func (s *Store) DeleteDirectory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return fmt.Errorf("directory %d: %w", id, refbook.ErrNotFound)
	}
	for vid, v := range s.versions {
		if v.DirectoryID == id {
			s.deleteVersionLocked(vid)
		}
	}
	delete(s.books, id)
	return nil
}

func (s *Store) DeleteVersion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.versions[id]; !ok {
		return fmt.Errorf("version %d: %w", id, refbook.ErrNotFound)
	}
	s.deleteVersionLocked(id)
	return nil
}

func (s *Store) deleteVersionLocked(id int64) {
	for eid, e := range s.elements {
		if e.VersionID == id {
			delete(s.elements, eid)
		}
	}
	delete(s.versions, id)
}
