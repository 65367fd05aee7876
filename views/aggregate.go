package views

import (
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// FilterRecords возвращает записи в диапазоне; nil означает весь набор
func FilterRecords(ds *models.Dataset, sel *models.SelectionRange) []models.Record {
	return ds.Between(sel)
}

// SumAges суммирует количество людей по каждому возрасту
func SumAges(records []models.Record) [models.AgeCount]int {
	var sums [models.AgeCount]int
	for _, r := range records {
		for age, n := range r.Ages {
			sums[age] += n
		}
	}
	return sums
}

// SumPriorities суммирует голоса по каждому приоритету
func SumPriorities(records []models.Record) [models.PriorityCount]int {
	var sums [models.PriorityCount]int
	for _, r := range records {
		for p, n := range r.Priorities {
			sums[p] += n
		}
	}
	return sums
}

// SumCounts суммирует количество ответов
func SumCounts(records []models.Record) int {
	total := 0
	for _, r := range records {
		total += r.Count
	}
	return total
}
