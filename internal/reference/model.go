package reference

// Catalog описывает один справочник в YAML-файле: версии и их элементы.
type Catalog struct {
	Code        string           `yaml:"code"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Versions    []CatalogVersion `yaml:"versions"`

	// Source: файл, из которого прочитан справочник (для сообщений линтера).
	Source string `yaml:"-"`
}

type CatalogVersion struct {
	Version   string        `yaml:"version"`
	StartDate string        `yaml:"start_date,omitempty"` // YYYY-MM-DD; пусто, если даты начала нет
	Elements  []CatalogItem `yaml:"elements"`
}

type CatalogItem struct {
	Code  string `yaml:"code"`
	Value string `yaml:"value"`
}
