package loader

import (
	"encoding/json"
	"fmt"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// ParseFamilyAttributes разбирает таблицу атрибутов семей
func ParseFamilyAttributes(raw []byte) ([]models.FamilyAttributes, error) {
	var attrs []models.FamilyAttributes
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("%w: таблица атрибутов семей: %v", ErrMalformedRecord, err)
	}
	for i, a := range attrs {
		if a.Family == "" {
			return nil, &RecordError{Index: i, Field: "Family"}
		}
	}
	return attrs, nil
}

// ParseMatrix разбирает матрицу смежности
func ParseMatrix(raw []byte) ([][]int, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: матрица смежности: %v", ErrMalformedRecord, err)
	}

	matrix := make([][]int, len(rows))
	for i, row := range rows {
		matrix[i] = make([]int, len(row))
		for j, cell := range row {
			v, err := intValue(cell)
			if err != nil {
				return nil, &RecordError{Index: i, Field: fmt.Sprintf("[%d]", j), Err: err}
			}
			matrix[i][j] = v
		}
	}
	return matrix, nil
}
