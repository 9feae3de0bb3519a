package refbook

// ResolveCurrentVersion выбирает текущую версию на дату on: максимальная start_date,
// не превышающая on. Версии без даты не участвуют. При совпадении дат (возможно
// только в обход ограничения уникальности) побеждает больший id.
func ResolveCurrentVersion(versions []Version, on Date) (Version, bool) {
	var (
		best  Version
		found bool
	)
	for _, v := range versions {
		if v.StartDate == nil || v.StartDate.After(on) {
			continue
		}
		if !found {
			best, found = v, true
			continue
		}
		switch c := v.StartDate.Compare(*best.StartDate); {
		case c > 0:
			best = v
		case c == 0 && v.ID > best.ID:
			best = v
		}
	}
	return best, found
}
