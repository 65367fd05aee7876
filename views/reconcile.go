package views

// Diff - результат сопоставления новых данных с уже отрисованными
// элементами по ключу. Три множества не пересекаются.
type Diff[K comparable, T any] struct {
	Enter  []T // новые ключи
	Update []T // ключи, которые уже отрисованы
	Exit   []K // отрисованные ключи, которых нет в новых данных
}

// Reconcile сопоставляет next с existing по ключу. Enter и Update
// сохраняют порядок next, Exit - порядок existing.
func Reconcile[K comparable, T any](existing []K, next []T, key func(T) K) Diff[K, T] {
	var d Diff[K, T]

	present := make(map[K]bool, len(existing))
	for _, k := range existing {
		present[k] = true
	}

	seen := make(map[K]bool, len(next))
	for _, item := range next {
		k := key(item)
		seen[k] = true
		if present[k] {
			d.Update = append(d.Update, item)
		} else {
			d.Enter = append(d.Enter, item)
		}
	}

	for _, k := range existing {
		if !seen[k] {
			d.Exit = append(d.Exit, k)
		}
	}
	return d
}
