// Package refbook описывает справочники с датированными версиями: модель, выбор текущей
// версии и поиск элементов.
package refbook

// Directory: справочник. Code уникален глобально.
type Directory struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Version: версия справочника.
// Уникальны пары (DirectoryID, Label) и (DirectoryID, StartDate).
type Version struct {
	ID          int64  `json:"id"`
	DirectoryID int64  `json:"directory_id"`
	Label       string `json:"version"`
	StartDate   *Date  `json:"start_date"`
}

// Element: элемент версии. Уникальна пара (VersionID, Code).
type Element struct {
	ID        int64  `json:"id"`
	VersionID int64  `json:"version_id"`
	Code      string `json:"code"`
	Value     string `json:"value"`
}

// ElementFilter: точные фильтры по элементам; нулевое значение поля = фильтра нет.
type ElementFilter struct {
	VersionID int64
	Code      string
	Value     string
}

// Match проверяет элемент на соответствие фильтру.
func (f ElementFilter) Match(e Element) bool {
	if f.VersionID != 0 && e.VersionID != f.VersionID {
		return false
	}
	if f.Code != "" && e.Code != f.Code {
		return false
	}
	if f.Value != "" && e.Value != f.Value {
		return false
	}
	return true
}

// VersionFilter: выборка версий одного справочника.
// StartedBy ограничивает start_date <= StartedBy (версии без даты при этом отпадают).
type VersionFilter struct {
	DirectoryID int64
	Label       string
	StartedBy   *Date
}

func (f VersionFilter) Match(v Version) bool {
	if v.DirectoryID != f.DirectoryID {
		return false
	}
	if f.Label != "" && v.Label != f.Label {
		return false
	}
	if f.StartedBy != nil {
		if v.StartDate == nil || v.StartDate.After(*f.StartedBy) {
			return false
		}
	}
	return true
}

// Summary: строка обзорного списка справочников (текущая версия и дата её начала).
type Summary struct {
	Directory
	CurrentVersion string `json:"current_version"`
	StartDate      *Date  `json:"start_date"`
}

// Имена ограничений уникальности, общие для всех хранилищ.
const (
	ConstraintDirectoryCode    = "ref_books_code_uq"
	ConstraintVersionLabel     = "ref_book_versions_version_uq"
	ConstraintVersionStartDate = "ref_book_versions_start_date_uq"
	ConstraintElementCode      = "ref_book_elements_code_uq"
)
