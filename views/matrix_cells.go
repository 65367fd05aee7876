package views

import (
	"fmt"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/svg"
)

// Классы элементов матрицы
const (
	classRow         = "matrix-row"
	classCell        = "matrix-cell"
	classMarriage    = "matrix-cell-marriage"
	classBusiness    = "matrix-cell-business"
	classRowLabel    = "matrix-row-label"
	classColumnLabel = "matrix-column-label"
	classLabel       = "matrix-label"
)

// Geometry - размеры ячейки матрицы. Ячейка квадратная, шаг строки
// и столбца равен стороне ячейки плюс отступ.
type Geometry struct {
	CellWidth   float64
	CellHeight  float64
	CellPadding float64
}

// NewGeometry делит ширину области рисования на n столбцов
func NewGeometry(width float64, n int) Geometry {
	if n <= 0 {
		return Geometry{}
	}
	padding := width / float64(n) / 3
	return Geometry{CellWidth: padding * 2, CellHeight: padding * 2, CellPadding: padding}
}

// RowPitch - вертикальный шаг строк
func (g Geometry) RowPitch() float64 {
	return g.CellHeight + g.CellPadding
}

// ColPitch - горизонтальный шаг столбцов
func (g Geometry) ColPitch() float64 {
	return g.CellWidth + g.CellPadding
}

// RowTransform возвращает смещение строки r
func (g Geometry) RowTransform(r int) string {
	return "translate(0," + svg.Num(g.RowPitch()*float64(r)) + ")"
}

// rowOffset возвращает смещение строки в нотации animateTransform
func (g Geometry) rowOffset(r int) string {
	return "0 " + svg.Num(g.RowPitch()*float64(r))
}

// MarriagePath - верхний левый треугольник ячейки в столбце c
func (g Geometry) MarriagePath(c int) string {
	x := g.ColPitch() * float64(c)
	return fmt.Sprintf("M %s 0 l %s 0 l 0 %s z", svg.Num(x), svg.Num(g.CellWidth), svg.Num(g.CellHeight))
}

// BusinessPath - нижний правый треугольник ячейки в столбце c
func (g Geometry) BusinessPath(c int) string {
	x := g.ColPitch() * float64(c)
	return fmt.Sprintf("M %s 0 l 0 %s l %s 0 z", svg.Num(x), svg.Num(g.CellHeight), svg.Num(g.CellWidth))
}

// ColumnLabelTransform размещает подпись столбца c над матрицей
func (g Geometry) ColumnLabelTransform(c int) string {
	pitch := g.ColPitch()
	return fmt.Sprintf("translate(%s,-8) rotate(270)", svg.Num(float64(c)*pitch+pitch/2))
}

// CellColor - цвет треугольника: отдельный цвет для отсутствия связи
func CellColor(value int, relation, none string) string {
	if value == 0 {
		return none
	}
	return relation
}

func colClass(c int) string {
	return fmt.Sprintf("matrix-col-%d", c)
}

func rowClass(r int) string {
	return fmt.Sprintf("matrix-row-%d", r)
}
