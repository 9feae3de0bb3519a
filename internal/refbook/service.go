package refbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Service: операции чтения справочников. Состояния не хранит, безопасен для
// конкурентного использования.
type Service struct {
	store  Reader
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Service)

// WithClock подменяет источник "сегодня".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(store Reader, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("refbook: store is required")
	}
	s := &Service{
		store:  store,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Today: локальная дата сервера.
func (s *Service) Today() Date {
	return DateOf(s.now())
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) ListDirectories(ctx context.Context, cutoff *Date) ([]Directory, error) {
	dirs, err := s.store.ListDirectories(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list directories: %w", err)
	}
	return dirs, nil
}

// CurrentVersion: текущая версия справочника на дату on; ok=false, если её нет.
func (s *Service) CurrentVersion(ctx context.Context, directoryID int64, on Date) (Version, bool, error) {
	versions, err := s.store.ListVersions(ctx, VersionFilter{DirectoryID: directoryID, StartedBy: &on})
	if err != nil {
		return Version{}, false, fmt.Errorf("list versions of %d: %w", directoryID, err)
	}
	v, ok := ResolveCurrentVersion(versions, on)
	return v, ok, nil
}

func (s *Service) ListElements(ctx context.Context, f ElementFilter) ([]Element, error) {
	elems, err := s.store.ListElements(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	return elems, nil
}

// ListElementsForDirectory: элементы указанной (по метке) или текущей версии.
// Неизвестная метка и отсутствие текущей версии дают пустой список, не ошибку.
func (s *Service) ListElementsForDirectory(ctx context.Context, directoryID int64, versionLabel string) ([]Element, error) {
	if _, err := s.store.GetDirectory(ctx, directoryID); err != nil {
		return nil, fmt.Errorf("get directory %d: %w", directoryID, err)
	}
	return s.elementsOf(ctx, directoryID, versionLabel, ElementFilter{})
}

// CheckElement: есть ли элемент с данными code и value в версии справочника.
// Сначала проверяется сам справочник (404 важнее 400), потом параметры.
func (s *Service) CheckElement(ctx context.Context, directoryID int64, code, value, versionLabel string) ([]Element, error) {
	if _, err := s.store.GetDirectory(ctx, directoryID); err != nil {
		return nil, fmt.Errorf("get directory %d: %w", directoryID, err)
	}
	if code == "" || value == "" {
		return nil, NewValidationError(MsgCodeValueRequired)
	}
	return s.elementsOf(ctx, directoryID, versionLabel, ElementFilter{Code: code, Value: value})
}

// elementsOf находит нужную версию и дочитывает её элементы с дополнительным фильтром.
func (s *Service) elementsOf(ctx context.Context, directoryID int64, versionLabel string, extra ElementFilter) ([]Element, error) {
	var (
		v   Version
		ok  bool
		err error
	)
	if versionLabel != "" {
		v, ok, err = s.versionByLabel(ctx, directoryID, versionLabel)
	} else {
		v, ok, err = s.CurrentVersion(ctx, directoryID, s.Today())
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.DebugContext(ctx, "no version to read elements from",
			"directory_id", directoryID, "version", versionLabel)
		return []Element{}, nil
	}
	extra.VersionID = v.ID
	return s.ListElements(ctx, extra)
}

func (s *Service) versionByLabel(ctx context.Context, directoryID int64, label string) (Version, bool, error) {
	versions, err := s.store.ListVersions(ctx, VersionFilter{DirectoryID: directoryID, Label: label})
	if err != nil {
		return Version{}, false, fmt.Errorf("find version %q of %d: %w", label, directoryID, err)
	}
	if len(versions) == 0 {
		return Version{}, false, nil
	}
	return versions[0], true, nil
}

// Summaries: все справочники с текущей версией на дату on.
func (s *Service) Summaries(ctx context.Context, on Date) ([]Summary, error) {
	dirs, err := s.ListDirectories(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(dirs))
	for _, d := range dirs {
		sum := Summary{Directory: d}
		v, ok, err := s.CurrentVersion(ctx, d.ID, on)
		if err != nil {
			return nil, err
		}
		if ok {
			sum.CurrentVersion = v.Label
			sum.StartDate = v.StartDate
		}
		out = append(out, sum)
	}
	return out, nil
}
