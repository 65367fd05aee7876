package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

const (
	fieldDay      = "day"
	fieldCount    = "count(*)"
	fieldAge      = "age"
	fieldAgeValue = "age"
	sumPrefix     = "sum(p"
)

// PriorityKey возвращает ключ суммы голосов для приоритета i
func PriorityKey(i int) string {
	return fmt.Sprintf("sum(p%d)", i)
}

// ParseDays разбирает JSON-массив записей по дням.
// Любая некорректная запись прерывает разбор целиком.
func ParseDays(raw []byte) ([]models.RawDay, error) {
	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("%w: ожидался массив записей: %v", ErrLoadFailure, err)
	}

	days := make([]models.RawDay, 0, len(objects))
	for i, obj := range objects {
		day, err := decodeDay(i, obj)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

func decodeDay(i int, obj map[string]json.RawMessage) (models.RawDay, error) {
	var day models.RawDay

	rawDay, ok := obj[fieldDay]
	if !ok {
		return day, &RecordError{Index: i, Field: fieldDay}
	}
	if err := json.Unmarshal(rawDay, &day.Day); err != nil {
		return day, &RecordError{Index: i, Field: fieldDay, Err: err}
	}

	rawCount, ok := obj[fieldCount]
	if !ok {
		return day, &RecordError{Index: i, Field: fieldCount}
	}
	count, err := intValue(rawCount)
	if err != nil {
		return day, &RecordError{Index: i, Field: fieldCount, Err: err}
	}
	day.Count = count

	day.Sums = make(map[string]int, models.PriorityCount)
	for key, value := range obj {
		if !strings.HasPrefix(key, sumPrefix) {
			continue
		}
		// Пустая сумма в SQL дает null, считаем ее нулем
		if string(value) == "null" {
			day.Sums[key] = 0
			continue
		}
		v, err := intValue(value)
		if err != nil {
			return day, &RecordError{Index: i, Field: key, Err: err}
		}
		day.Sums[key] = v
	}

	rawAges, ok := obj[fieldAge]
	if !ok {
		return day, &RecordError{Index: i, Field: fieldAge}
	}
	var ages []map[string]json.RawMessage
	if err := json.Unmarshal(rawAges, &ages); err != nil {
		return day, &RecordError{Index: i, Field: fieldAge, Err: err}
	}
	for _, a := range ages {
		age, err := intValue(a[fieldAgeValue])
		if err != nil {
			return day, &RecordError{Index: i, Field: fieldAge + "." + fieldAgeValue, Err: err}
		}
		n, err := intValue(a[fieldCount])
		if err != nil {
			return day, &RecordError{Index: i, Field: fieldAge + "." + fieldCount, Err: err}
		}
		day.Ages = append(day.Ages, models.RawAge{Age: age, Count: n})
	}

	return day, nil
}

func intValue(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("значение отсутствует")
	}
	var n models.FlexNumber
	if err := n.UnmarshalJSON(raw); err != nil {
		return 0, err
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("ожидалось целое число: %v", f)
	}
	return int(f), nil
}

// BuildRecord нормализует запись за день:
// дата строго в формате YYYY-MM-DD, количество увеличивается на единицу,
// приоритеты собираются по ключам sum(p0)..sum(p14), возрасты раскладываются
// в плотный массив, возрасты вне массива отбрасываются.
func BuildRecord(i int, d models.RawDay) (models.Record, error) {
	var rec models.Record

	t, err := time.Parse(models.DayLayout, d.Day)
	if err != nil {
		return rec, &RecordError{Index: i, Field: fieldDay, Err: err}
	}
	rec.Time = t

	// Смещение на единицу убирает нули перед делением и логарифмом в графиках
	rec.Count = d.Count + 1

	for p := 0; p < models.PriorityCount; p++ {
		v, ok := d.Sums[PriorityKey(p)]
		if !ok {
			return rec, &RecordError{Index: i, Field: PriorityKey(p)}
		}
		rec.Priorities[p] = v
	}

	for _, a := range d.Ages {
		if a.Age < 0 || a.Age >= models.AgeCount {
			continue
		}
		rec.Ages[a.Age] = a.Count
	}

	return rec, nil
}

// BuildRecords нормализует все записи и сортирует их по дате
func BuildRecords(days []models.RawDay) ([]models.Record, error) {
	records := make([]models.Record, 0, len(days))
	for i, d := range days {
		rec, err := BuildRecord(i, d)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Time.Before(records[b].Time)
	})
	return records, nil
}
