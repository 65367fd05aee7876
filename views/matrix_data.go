package views

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// ErrUnknownSortKey - ключ сортировки не поддерживается
var ErrUnknownSortKey = errors.New("неизвестный ключ сортировки")

// Wrangle строит сущности семей из таблиц. Каждый вызов пересчитывает
// все суммы заново; таблицы должны пройти FamilyTables.Validate.
func Wrangle(tables *models.FamilyTables) []models.FamilyEntity {
	families := make([]models.FamilyEntity, len(tables.Attributes))
	for i, attrs := range tables.Attributes {
		marriages := sumRow(tables.Marriages[i])
		business := sumRow(tables.Business[i])

		families[i] = models.FamilyEntity{
			Index:           i,
			Name:            attrs.Family,
			Wealth:          float64(attrs.Wealth),
			NumberPriorates: float64(attrs.NumberPriorates),
			Marriages:       marriages,
			BusinessTies:    business,
			AllRelations:    marriages + business,
			MarriageValues:  append([]int(nil), tables.Marriages[i]...),
			BusinessValues:  append([]int(nil), tables.Business[i]...),
		}
	}
	return families
}

func sumRow(row []int) int {
	total := 0
	for _, v := range row {
		total += v
	}
	return total
}

// SortFamilies возвращает отсортированную копию: "index" по возрастанию,
// остальные ключи по убыванию. Порядок равных значений сохраняется.
func SortFamilies(families []models.FamilyEntity, key string) ([]models.FamilyEntity, error) {
	if len(families) > 0 {
		if _, ok := families[0].SortValue(key); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
		}
	} else if !IsSortKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}

	sorted := append([]models.FamilyEntity(nil), families...)
	ascending := key == models.SortIndex
	sort.SliceStable(sorted, func(a, b int) bool {
		va, _ := sorted[a].SortValue(key)
		vb, _ := sorted[b].SortValue(key)
		if ascending {
			return va < vb
		}
		return va > vb
	})
	return sorted, nil
}

// IsSortKey проверяет ключ сортировки
func IsSortKey(key string) bool {
	for _, k := range models.SortKeys {
		if k == key {
			return true
		}
	}
	return false
}
