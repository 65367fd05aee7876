package models

import (
	"encoding/json"
	"time"
)

const (
	// Количество категорий приоритетов в опросе (p0..p14)
	PriorityCount = 15

	// Длина плотного массива возрастов, индекс = возраст в годах
	AgeCount = 99

	// Формат даты в исходных данных
	DayLayout = "2006-01-02"
)

// RawAge представляет пару (возраст, количество) из исходной записи
type RawAge struct {
	Age   int
	Count int
}

// RawDay представляет запись за день в исходном виде,
// до нормализации загрузчиком
type RawDay struct {
	Day   string
	Count int

	// Суммы голосов по ключам вида "sum(p0)"
	Sums map[string]int

	Ages []RawAge
}

// Record представляет нормализованную запись за один календарный день.
// Массивы фиксированной длины, поэтому после загрузки в них нет пропусков.
type Record struct {
	Time       time.Time
	Count      int
	Priorities [PriorityCount]int
	Ages       [AgeCount]int
}

// Dataset содержит общие данные панели. Создается один раз загрузчиком
// и далее только читается всеми представлениями.
type Dataset struct {
	records []Record
	meta    json.RawMessage
}

// NewDataset создает набор данных; записи должны быть отсортированы по времени
func NewDataset(records []Record, meta json.RawMessage) *Dataset {
	return &Dataset{records: records, meta: meta}
}

// Records возвращает записи. Срез общий для всех представлений, изменять его нельзя.
func (d *Dataset) Records() []Record {
	return d.records
}

// Meta возвращает метаданные без изменений
func (d *Dataset) Meta() json.RawMessage {
	return d.meta
}

// Len возвращает количество дней в наборе
func (d *Dataset) Len() int {
	return len(d.records)
}

// Span возвращает полный диапазон дат набора
func (d *Dataset) Span() (SelectionRange, bool) {
	if len(d.records) == 0 {
		return SelectionRange{}, false
	}
	return NewSelectionRange(d.records[0].Time, d.records[len(d.records)-1].Time), true
}

// Between возвращает записи, попадающие в диапазон. nil означает весь набор.
func (d *Dataset) Between(sel *SelectionRange) []Record {
	if sel == nil {
		return d.records
	}

	result := make([]Record, 0, len(d.records))
	for _, r := range d.records {
		if sel.Contains(r.Time) {
			result = append(result, r)
		}
	}
	return result
}
