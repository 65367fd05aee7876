package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ключи сортировки матрицы семей
const (
	SortIndex           = "index"
	SortWealth          = "wealth"
	SortNumberPriorates = "numberPriorates"
	SortMarriages       = "marriages"
	SortBusinessTies    = "businessTies"
	SortAllRelations    = "allRelations"
)

// SortKeys перечисляет допустимые ключи сортировки
var SortKeys = []string{
	SortIndex,
	SortWealth,
	SortNumberPriorates,
	SortMarriages,
	SortBusinessTies,
	SortAllRelations,
}

// FlexNumber принимает как число, так и строку с числом
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = FlexNumber(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ожидалось число: %s", string(data))
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("ожидалось число: %q", s)
	}
	*n = FlexNumber(f)
	return nil
}

// FamilyAttributes - строка таблицы атрибутов семей
type FamilyAttributes struct {
	Family          string     `json:"Family"`
	Wealth          FlexNumber `json:"Wealth"`
	NumberPriorates FlexNumber `json:"NumberPriorates"`
}

// FamilyTables - сырые таблицы приложения матрицы: атрибуты и две
// симметричные матрицы смежности N×N
type FamilyTables struct {
	Attributes []FamilyAttributes
	Marriages  [][]int
	Business   [][]int
}

// Validate проверяет размеры и симметричность матриц
func (t *FamilyTables) Validate() error {
	n := len(t.Attributes)
	matrices := []struct {
		name string
		m    [][]int
	}{{"marriages", t.Marriages}, {"business", t.Business}}

	for _, mx := range matrices {
		name, m := mx.name, mx.m
		if len(m) != n {
			return fmt.Errorf("матрица %s: %d строк, ожидалось %d", name, len(m), n)
		}
		for i, row := range m {
			if len(row) != n {
				return fmt.Errorf("матрица %s: строка %d длины %d, ожидалось %d", name, i, len(row), n)
			}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if m[i][j] != m[j][i] {
					return fmt.Errorf("матрица %s несимметрична в (%d,%d)", name, i, j)
				}
			}
		}
	}
	return nil
}

// FamilyEntity - строка матрицы после агрегации
type FamilyEntity struct {
	Index           int
	Name            string
	Wealth          float64
	NumberPriorates float64
	Marriages       int
	BusinessTies    int
	AllRelations    int
	MarriageValues  []int
	BusinessValues  []int
}

// SortValue возвращает числовое значение для ключа сортировки
func (f FamilyEntity) SortValue(key string) (float64, bool) {
	switch key {
	case SortIndex:
		return float64(f.Index), true
	case SortWealth:
		return f.Wealth, true
	case SortNumberPriorates:
		return f.NumberPriorates, true
	case SortMarriages:
		return float64(f.Marriages), true
	case SortBusinessTies:
		return float64(f.BusinessTies), true
	case SortAllRelations:
		return float64(f.AllRelations), true
	}
	return 0, false
}
