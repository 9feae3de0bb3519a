package reference

import (
	"context"
	"fmt"

	"refbooks/internal/refbook"
)

type SeedStats struct {
	Directories int
	Versions    int
	Elements    int
}

// Seed записывает справочники в хранилище. Останавливается на первой ошибке;
// то, что уже записано, остаётся (транзакций у Writer нет).
func Seed(ctx context.Context, w refbook.Writer, catalogs []Catalog) (SeedStats, error) {
	var st SeedStats
	for _, c := range catalogs {
		d := refbook.Directory{Code: c.Code, Name: c.Name}
		if c.Description != "" {
			desc := c.Description
			d.Description = &desc
		}
		if err := w.CreateDirectory(ctx, &d); err != nil {
			return st, fmt.Errorf("%s: create directory %q: %w", c.Source, c.Code, err)
		}
		st.Directories++

		for _, cv := range c.Versions {
			v := refbook.Version{DirectoryID: d.ID, Label: cv.Version}
			if cv.StartDate != "" {
				sd, err := refbook.ParseDate(cv.StartDate)
				if err != nil {
					return st, fmt.Errorf("%s: version %q: %w", c.Source, cv.Version, err)
				}
				v.StartDate = &sd
			}
			if err := w.CreateVersion(ctx, &v); err != nil {
				return st, fmt.Errorf("%s: create version %q: %w", c.Source, cv.Version, err)
			}
			st.Versions++

			for _, it := range cv.Elements {
				e := refbook.Element{VersionID: v.ID, Code: it.Code, Value: it.Value}
				if err := w.CreateElement(ctx, &e); err != nil {
					return st, fmt.Errorf("%s: version %q: create element %q: %w", c.Source, cv.Version, it.Code, err)
				}
				st.Elements++
			}
		}
	}
	return st, nil
}

// LoadAndSeed: LoadCatalogs + Lint + Seed. Любое замечание линтера делает ошибкой всю загрузку.
func LoadAndSeed(ctx context.Context, w refbook.Writer, dir string) (SeedStats, error) {
	catalogs, err := LoadCatalogs(dir)
	if err != nil {
		return SeedStats{}, fmt.Errorf("load catalogs: %w", err)
	}
	if issues := Lint(catalogs); len(issues) > 0 {
		return SeedStats{}, &LintError{Issues: issues}
	}
	return Seed(ctx, w, catalogs)
}

type LintError struct {
	Issues []Issue
}

func (e *LintError) Error() string {
	return fmt.Sprintf("catalogs have %d blocking issue(s), first: %s", len(e.Issues), e.Issues[0])
}
