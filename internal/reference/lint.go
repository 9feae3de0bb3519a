package reference

import (
	"fmt"
	"strings"

	"refbooks/internal/refbook"
)

type Issue struct {
	Catalog string `json:"catalog"` // код справочника
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", i.Catalog, i.Field, i.Message, i.Code)
}

// Коды замечаний линтера
const (
	IssueRequired         = "required"
	IssueBadDate          = "bad_date"
	IssueDuplicateBook    = "duplicate_code"
	IssueDuplicateVersion = "duplicate_version"
	IssueDuplicateStart   = "duplicate_start_date"
	IssueDuplicateElement = "duplicate_element_code"
)

// Lint проверяет справочники на то, что иначе упадёт на ограничениях уникальности БД.
func Lint(catalogs []Catalog) []Issue {
	var issues []Issue
	add := func(cat, field, code, msg string) {
		issues = append(issues, Issue{Catalog: cat, Field: field, Code: code, Message: msg})
	}

	books := map[string]string{} // code -> source
	for _, c := range catalogs {
		if prev, ok := books[c.Code]; ok {
			add(c.Code, "code", IssueDuplicateBook, fmt.Sprintf("code already defined in %s", prev))
		}
		books[c.Code] = c.Source
		if strings.TrimSpace(c.Name) == "" {
			add(c.Code, "name", IssueRequired, "name is required")
		}

		labels := map[string]struct{}{}
		starts := map[refbook.Date]string{}
		for i, v := range c.Versions {
			vf := fmt.Sprintf("versions[%d]", i)
			if strings.TrimSpace(v.Version) == "" {
				add(c.Code, vf+".version", IssueRequired, "version label is required")
			} else if _, dup := labels[v.Version]; dup {
				add(c.Code, vf+".version", IssueDuplicateVersion, fmt.Sprintf("version %q repeats", v.Version))
			}
			labels[v.Version] = struct{}{}

			if v.StartDate != "" {
				d, err := refbook.ParseDate(v.StartDate)
				if err != nil {
					add(c.Code, vf+".start_date", IssueBadDate, fmt.Sprintf("start_date %q is not YYYY-MM-DD", v.StartDate))
				} else if other, dup := starts[d]; dup {
					add(c.Code, vf+".start_date", IssueDuplicateStart,
						fmt.Sprintf("start_date %s already used by version %q", d, other))
				} else {
					starts[d] = v.Version
				}
			}

			codes := map[string]struct{}{}
			for j, e := range v.Elements {
				ef := fmt.Sprintf("%s.elements[%d]", vf, j)
				if strings.TrimSpace(e.Code) == "" {
					add(c.Code, ef+".code", IssueRequired, "element code is required")
					continue
				}
				if _, dup := codes[e.Code]; dup {
					add(c.Code, ef+".code", IssueDuplicateElement, fmt.Sprintf("element code %q repeats in version %q", e.Code, v.Version))
				}
				codes[e.Code] = struct{}{}
			}
		}
	}
	return issues
}
