package reference_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refbooks/internal/memstore"
	"refbooks/internal/refbook"
	"refbooks/internal/reference"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

const specialties = `
code: "1"
name: Специальности медицинских работников
description: Номенклатура
versions:
  - version: "1.0"
    start_date: "2023-08-02"
  - version: "1.1"
    start_date: "2023-08-10"
    elements:
      - {code: "1", value: Терапевт}
      - {code: "2", value: Травматолог}
`

func TestLoadCatalogs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_positions.yml", `
name: Должности
versions:
  - version: draft
    elements:
      - {code: "1", value: Заведующий}
`)
	writeFile(t, dir, "001_specialties.yaml", specialties)
	writeFile(t, dir, "README.md", "not a catalog")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	got, err := reference.LoadCatalogs(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1", got[0].Code)
	assert.Equal(t, "Номенклатура", got[0].Description)
	assert.Equal(t, filepath.Join(dir, "001_specialties.yaml"), got[0].Source)
	require.Len(t, got[0].Versions, 2)
	assert.Empty(t, got[0].Versions[0].Elements)
	assert.Equal(t, []reference.CatalogItem{{Code: "1", Value: "Терапевт"}, {Code: "2", Value: "Травматолог"}},
		got[0].Versions[1].Elements)

	// код не указан, берём имя файла
	assert.Equal(t, "002_positions", got[1].Code)
	assert.Empty(t, got[1].Versions[0].StartDate)
}

func TestLoadCatalogsErrors(t *testing.T) {
	_, err := reference.LoadCatalogs(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "versions: [unclosed")
	_, err = reference.LoadCatalogs(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadBundledCatalogs(t *testing.T) {
	got, err := reference.LoadCatalogs(filepath.Join("..", "..", "reference", "refbooks"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Empty(t, reference.Lint(got))
}

func TestLint(t *testing.T) {
	catalogs := []reference.Catalog{
		{Code: "1", Name: "A", Source: "a.yaml", Versions: []reference.CatalogVersion{
			{Version: "1.0", StartDate: "2023-08-02"},
			{Version: "1.0", StartDate: "2023-08-02"},
			{Version: "", StartDate: "02.08.2023"},
			{Version: "2.0", Elements: []reference.CatalogItem{
				{Code: "1", Value: "x"},
				{Code: "1", Value: "y"},
				{Code: " ", Value: "z"},
			}},
		}},
		{Code: "1", Name: " ", Source: "b.yaml"},
	}

	issues := reference.Lint(catalogs)
	codes := make([]string, 0, len(issues))
	for _, i := range issues {
		codes = append(codes, i.Code)
	}
	assert.Equal(t, []string{
		reference.IssueDuplicateVersion,
		reference.IssueDuplicateStart,
		reference.IssueRequired,
		reference.IssueBadDate,
		reference.IssueDuplicateElement,
		reference.IssueRequired,
		reference.IssueDuplicateBook,
		reference.IssueRequired,
	}, codes)

	assert.Equal(t, "versions[1].start_date", issues[1].Field)
	assert.Equal(t, "versions[3].elements[1].code", issues[4].Field)
	assert.Contains(t, issues[6].Message, "a.yaml")
	assert.Equal(t, `1: name: name is required (required)`, issues[7].String())
}

func TestLintNullStartDatesAreFine(t *testing.T) {
	issues := reference.Lint([]reference.Catalog{{Code: "1", Name: "A", Versions: []reference.CatalogVersion{
		{Version: "draft-1"},
		{Version: "draft-2"},
	}}})
	assert.Empty(t, issues)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "001_specialties.yaml", specialties)

	store := memstore.New()
	st, err := reference.LoadAndSeed(ctx, store, dir)
	require.NoError(t, err)
	assert.Equal(t, reference.SeedStats{Directories: 1, Versions: 2, Elements: 2}, st)

	dirs, err := store.ListDirectories(ctx, nil)
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	require.NotNil(t, dirs[0].Description)
	assert.Equal(t, "Номенклатура", *dirs[0].Description)

	versions, err := store.ListVersions(ctx, refbook.VersionFilter{DirectoryID: dirs[0].ID, Label: "1.1"})
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, refbook.MustDate("2023-08-10"), *versions[0].StartDate)

	elems, err := store.ListElements(ctx, refbook.ElementFilter{VersionID: versions[0].ID})
	require.NoError(t, err)
	assert.Len(t, elems, 2)

	// повторная загрузка упирается в уникальность кода справочника
	_, err = reference.LoadAndSeed(ctx, store, dir)
	assert.ErrorIs(t, err, refbook.ErrConflict)
}

func TestLoadAndSeedRejectsLintIssues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", `
code: "9"
name: Broken
versions:
  - {version: "1.0", start_date: "2023-13-01"}
`)
	store := memstore.New()
	_, err := reference.LoadAndSeed(context.Background(), store, dir)

	var le *reference.LintError
	require.ErrorAs(t, err, &le)
	require.Len(t, le.Issues, 1)
	assert.Equal(t, reference.IssueBadDate, le.Issues[0].Code)

	// ничего не записано
	dirs, err := store.ListDirectories(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, dirs)
}
