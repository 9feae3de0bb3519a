package api

import (
	"net/url"
	"strconv"
	"strings"

	"refbooks/internal/refbook"
)

// ==== Параметры запросов ====

type directoryListParams struct {
	Date *refbook.Date // фильтр "есть версия с start_date <= Date"
}

type elementParams struct {
	Version string
	Code    string
	Value   string
}

// Пустые значения считаем отсутствующими.
func queryValue(q url.Values, key string) string {
	return strings.TrimSpace(q.Get(key))
}

// parseDirectoryListParams: ошибки по полям, как FieldError-карта {"date": [...]}.
func parseDirectoryListParams(q url.Values) (directoryListParams, map[string][]string) {
	var p directoryListParams
	if raw := queryValue(q, "date"); raw != "" {
		d, err := refbook.ParseDate(raw)
		if err != nil {
			return p, map[string][]string{"date": {MsgInvalidDate}}
		}
		p.Date = &d
	}
	return p, nil
}

// code и value не тримим: сравнение точное.
func parseElementParams(q url.Values) elementParams {
	return elementParams{
		Version: queryValue(q, "version"),
		Code:    q.Get("code"),
		Value:   q.Get("value"),
	}
}

// parseID: нечисловой id означает, что такого справочника нет.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
