package models

import (
	"fmt"
	"time"
)

// Имена событий шины
const (
	EventSelectionChanged = "selectionChanged"
)

// SelectionRange - диапазон выбора по календарным дням, обе границы включены.
// Живет только как полезная нагрузка события.
type SelectionRange struct {
	Start time.Time
	End   time.Time
}

// NewSelectionRange нормализует границы до календарных дней и меняет их местами,
// если начало позже конца
func NewSelectionRange(start, end time.Time) SelectionRange {
	s, e := truncateDay(start), truncateDay(end)
	if s.After(e) {
		s, e = e, s
	}
	return SelectionRange{Start: s, End: e}
}

// ParseSelectionRange разбирает границы в формате YYYY-MM-DD
func ParseSelectionRange(start, end string) (SelectionRange, error) {
	s, err := time.Parse(DayLayout, start)
	if err != nil {
		return SelectionRange{}, fmt.Errorf("неверная дата начала %q: %w", start, err)
	}
	e, err := time.Parse(DayLayout, end)
	if err != nil {
		return SelectionRange{}, fmt.Errorf("неверная дата конца %q: %w", end, err)
	}
	return NewSelectionRange(s, e), nil
}

// Contains проверяет, попадает ли день в диапазон
func (r SelectionRange) Contains(t time.Time) bool {
	day := truncateDay(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

func (r SelectionRange) String() string {
	return r.Start.Format(DayLayout) + ".." + r.End.Format(DayLayout)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
