package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalogs читает все справочники (*.yaml, *.yml) из папки dir в порядке имён файлов.
func LoadCatalogs(dir string) ([]Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(e.Name())); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	result := make([]Catalog, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var c Catalog
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		// Код справочника берётся из файла или из имени файла
		if strings.TrimSpace(c.Code) == "" {
			c.Code = strings.TrimSuffix(name, filepath.Ext(name))
		}
		c.Source = path
		result = append(result, c)
	}
	return result, nil
}
