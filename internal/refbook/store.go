package refbook

//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks Reader

import "context"

// Reader описывает, что ядру нужно от хранилища. Все выборки упорядочены по id,
// версии по start_date (NULL в начале), затем по id.
type Reader interface {
	// ListDirectories: при cutoff == nil все справочники; иначе те, у которых есть
	// хотя бы одна версия с start_date <= cutoff, каждый один раз.
	ListDirectories(ctx context.Context, cutoff *Date) ([]Directory, error)
	// GetDirectory возвращает ErrNotFound, если справочника нет.
	GetDirectory(ctx context.Context, id int64) (Directory, error)
	ListVersions(ctx context.Context, f VersionFilter) ([]Version, error)
	ListElements(ctx context.Context, f ElementFilter) ([]Element, error)
	Ping(ctx context.Context) error
}

// Writer: административная запись (сидинг, тесты). Нарушение уникальности возвращается как *ConflictError.
type Writer interface {
	CreateDirectory(ctx context.Context, d *Directory) error
	CreateVersion(ctx context.Context, v *Version) error
	CreateElement(ctx context.Context, e *Element) error
	// DeleteDirectory удаляет справочник каскадно с версиями и элементами.
	DeleteDirectory(ctx context.Context, id int64) error
	// DeleteVersion удаляет версию каскадно с элементами.
	DeleteVersion(ctx context.Context, id int64) error
}

type Store interface {
	Reader
	Writer
	Close() error
}
