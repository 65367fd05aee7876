package views

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/config"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/svg"
)

// Длительности анимаций матрицы
const (
	RowTransition   = 1000 * time.Millisecond
	DimTransition   = 300 * time.Millisecond
	FocusTransition = 600 * time.Millisecond
	LeaveTransition = 300 * time.Millisecond

	dimmedOpacity = "0.2"
	fullOpacity   = "1"
)

var (
	// ErrNotInitialized - операция вызвана до Initialize
	ErrNotInitialized = errors.New("представление еще не инициализировано")

	// ErrCellOutOfRange - ячейка вне матрицы
	ErrCellOutOfRange = errors.New("ячейка вне матрицы")
)

// HoverState - состояние подсветки матрицы
type HoverState int

const (
	HoverNeutral HoverState = iota
	HoverHighlighted
)

func (s HoverState) String() string {
	if s == HoverHighlighted {
		return "highlighted"
	}
	return "neutral"
}

// MatrixView - матрица связей семей. Строки сопоставляются с данными
// по имени семьи, поэтому при пересортировке строки переезжают, а не
// создаются заново.
type MatrixView struct {
	tables   *models.FamilyTables
	layout   config.MatrixLayout
	families []models.FamilyEntity
	geometry Geometry

	doc  *svg.Node
	plot *svg.Node

	rows    map[string]*svg.Node
	rowKeys []string
	rowY    map[string]string
	visual  []string

	columns    map[string]*svg.Node
	columnKeys []string

	order string

	state    HoverState
	hoverRow int
	hoverCol int
}

// NewMatrixView проверяет таблицы и создает представление
func NewMatrixView(tables *models.FamilyTables, layout config.MatrixLayout) (*MatrixView, error) {
	if err := checkTables(tables); err != nil {
		return nil, err
	}
	return &MatrixView{
		tables:  tables,
		layout:  layout,
		rows:    make(map[string]*svg.Node),
		rowY:    make(map[string]string),
		columns: make(map[string]*svg.Node),
		order:   models.SortIndex,
	}, nil
}

func checkTables(tables *models.FamilyTables) error {
	if err := tables.Validate(); err != nil {
		return err
	}
	names := make(map[string]bool, len(tables.Attributes))
	for _, a := range tables.Attributes {
		if names[a.Family] {
			return fmt.Errorf("семья %q встречается дважды", a.Family)
		}
		names[a.Family] = true
	}
	return nil
}

func (v *MatrixView) ID() string { return IDMatrix }

// Initialize создает поверхность и рисует матрицу в исходном порядке
func (v *MatrixView) Initialize() error {
	width := v.layout.Width() + float64(v.layout.Margin.Left+v.layout.Margin.Right)
	height := v.layout.Height() + float64(v.layout.Margin.Top+v.layout.Margin.Bottom)

	v.doc = svg.Document(width, height)
	v.plot = v.doc.AppendNew("g").
		Set("transform", fmt.Sprintf("translate(%d,%d)", v.layout.Margin.Left, v.layout.Margin.Top))

	v.wrangle()
	return v.Render(v.order)
}

// OnSelectionChange ничего не делает: матрица не зависит от диапазона дат
func (v *MatrixView) OnSelectionChange(start, end time.Time) {}

func (v *MatrixView) wrangle() {
	v.families = Wrangle(v.tables)
	v.geometry = NewGeometry(v.layout.Width(), len(v.families))
}

// SetTables заменяет таблицы и перерисовывает матрицу в текущем порядке
func (v *MatrixView) SetTables(tables *models.FamilyTables) error {
	if err := checkTables(tables); err != nil {
		return err
	}
	v.tables = tables
	if v.doc == nil {
		return nil
	}
	v.wrangle()
	v.state = HoverNeutral
	return v.Render(v.order)
}

// Render сортирует семьи по ключу и сопоставляет строки с данными
func (v *MatrixView) Render(order string) error {
	if v.doc == nil {
		return ErrNotInitialized
	}
	sorted, err := SortFamilies(v.families, order)
	if err != nil {
		return err
	}

	diff := Reconcile(v.rowKeys, sorted, familyName)
	for _, name := range diff.Exit {
		v.plot.Remove(v.rows[name])
		delete(v.rows, name)
		delete(v.rowY, name)
	}
	v.rowKeys = without(v.rowKeys, diff.Exit)

	position := make(map[string]int, len(sorted))
	for r, f := range sorted {
		position[f.Name] = r
	}
	for _, f := range diff.Enter {
		v.enterRow(f, position[f.Name])
	}

	v.visual = v.visual[:0]
	for r, f := range sorted {
		v.updateRow(f, r)
		v.visual = append(v.visual, f.Name)
	}

	v.renderColumnLabels()
	v.order = order
	return nil
}

func familyName(f models.FamilyEntity) string {
	return f.Name
}

func (v *MatrixView) enterRow(f models.FamilyEntity, r int) {
	g := svg.New("g").
		Set("class", classRow+" "+rowClass(r)).
		Set("matrix-row-index", strconv.Itoa(r)).
		Set("transform", v.geometry.RowTransform(r))

	g.AppendNew("text").
		Set("class", classLabel+" "+classRowLabel).
		Set("x", "-10").
		Set("y", svg.Num(v.geometry.CellHeight/2)).
		Set("dy", ".35em").
		Set("text-anchor", "end").
		SetText(f.Name)
	v.appendCells(g, f)

	v.plot.Append(g)
	v.rows[f.Name] = g
	v.rowKeys = append(v.rowKeys, f.Name)
	v.rowY[f.Name] = v.geometry.rowOffset(r)
}

func (v *MatrixView) appendCells(g *svg.Node, f models.FamilyEntity) {
	for c, value := range f.MarriageValues {
		g.AppendNew("path").
			Set("class", classCell+" "+classMarriage+" "+colClass(c)).
			Set("d", v.geometry.MarriagePath(c)).
			Set("fill", CellColor(value, v.layout.ColorMarriage, v.layout.ColorNoRelation)).
			Set("fill-opacity", fullOpacity)
	}
	for c, value := range f.BusinessValues {
		g.AppendNew("path").
			Set("class", classCell+" "+classBusiness+" "+colClass(c)).
			Set("d", v.geometry.BusinessPath(c)).
			Set("fill", CellColor(value, v.layout.ColorBusiness, v.layout.ColorNoRelation)).
			Set("fill-opacity", fullOpacity)
	}
}

// updateRow переносит строку на позицию r с пульсацией прозрачности
func (v *MatrixView) updateRow(f models.FamilyEntity, r int) {
	g := v.rows[f.Name]
	g.Set("class", classRow+" "+rowClass(r))
	g.Set("matrix-row-index", strconv.Itoa(r))
	g.TransitionFrom("opacity", "0.5", fullOpacity, RowTransition)

	from := v.rowY[f.Name]
	if pending, ok := g.Pending("transform"); ok {
		from = pending.From
	}
	to := v.geometry.rowOffset(r)
	g.TransitionTransform("translate", from, to, v.geometry.RowTransform(r), RowTransition)
	v.rowY[f.Name] = to

	v.syncCells(g, f)
}

// syncCells приводит ячейки строки к значениям сущности
func (v *MatrixView) syncCells(g *svg.Node, f models.FamilyEntity) {
	for _, label := range g.SelectClass(classRowLabel) {
		label.Set("y", svg.Num(v.geometry.CellHeight/2)).SetText(f.Name)
	}

	marriage := g.SelectClass(classMarriage)
	business := g.SelectClass(classBusiness)
	if len(marriage) != len(f.MarriageValues) || len(business) != len(f.BusinessValues) {
		for _, cell := range append(marriage, business...) {
			g.Remove(cell)
		}
		v.appendCells(g, f)
		return
	}

	for c, cell := range marriage {
		cell.Set("d", v.geometry.MarriagePath(c)).
			Set("fill", CellColor(f.MarriageValues[c], v.layout.ColorMarriage, v.layout.ColorNoRelation))
	}
	for c, cell := range business {
		cell.Set("d", v.geometry.BusinessPath(c)).
			Set("fill", CellColor(f.BusinessValues[c], v.layout.ColorBusiness, v.layout.ColorNoRelation))
	}
}

// renderColumnLabels рисует подписи столбцов в исходном порядке семей
func (v *MatrixView) renderColumnLabels() {
	diff := Reconcile(v.columnKeys, v.families, familyName)
	for _, name := range diff.Exit {
		v.plot.Remove(v.columns[name])
		delete(v.columns, name)
	}
	v.columnKeys = without(v.columnKeys, diff.Exit)

	for _, f := range diff.Enter {
		label := v.plot.AppendNew("text").
			Set("class", classLabel+" "+classColumnLabel).
			Set("text-anchor", "start").
			Set("transform", v.geometry.ColumnLabelTransform(f.Index)).
			SetText(f.Name)
		v.columns[f.Name] = label
		v.columnKeys = append(v.columnKeys, f.Name)
	}
	for _, f := range diff.Update {
		v.columns[f.Name].Set("transform", v.geometry.ColumnLabelTransform(f.Index))
	}
}

// Sort перерисовывает матрицу в новом порядке
func (v *MatrixView) Sort(key string) error {
	return v.Render(key)
}

// Hover подсвечивает столбец col и строку row (номер строки на экране):
// все ячейки приглушаются, затем ячейки столбца и строки возвращаются
// к полной непрозрачности
func (v *MatrixView) Hover(row, col int) error {
	if v.doc == nil {
		return ErrNotInitialized
	}
	n := len(v.families)
	if row < 0 || row >= n || col < 0 || col >= n {
		return fmt.Errorf("%w: (%d,%d) при размере %d", ErrCellOutOfRange, row, col, n)
	}

	for _, cell := range v.plot.SelectClass(classCell) {
		cell.Transition("fill-opacity", dimmedOpacity, DimTransition)
	}
	for _, cell := range v.plot.SelectClass(colClass(col)) {
		cell.Transition("fill-opacity", fullOpacity, FocusTransition)
	}
	for _, g := range v.plot.SelectClass(rowClass(row)) {
		for _, cell := range g.Select(isPath) {
			cell.Transition("fill-opacity", fullOpacity, FocusTransition)
		}
	}

	v.state, v.hoverRow, v.hoverCol = HoverHighlighted, row, col
	return nil
}

// Leave возвращает все ячейки к полной непрозрачности
func (v *MatrixView) Leave() error {
	if v.doc == nil {
		return ErrNotInitialized
	}
	for _, cell := range v.plot.SelectClass(classCell) {
		cell.Transition("fill-opacity", fullOpacity, LeaveTransition)
	}
	v.state = HoverNeutral
	return nil
}

func isPath(n *svg.Node) bool {
	return n.Tag == "path"
}

// HoverState возвращает состояние подсветки и подсвеченную ячейку
func (v *MatrixView) HoverState() (HoverState, int, int) {
	if v.state == HoverNeutral {
		return HoverNeutral, -1, -1
	}
	return v.state, v.hoverRow, v.hoverCol
}

// Order возвращает текущий ключ сортировки
func (v *MatrixView) Order() string {
	return v.order
}

// RowOrder возвращает имена семей в порядке строк на экране
func (v *MatrixView) RowOrder() []string {
	return append([]string(nil), v.visual...)
}

// Families возвращает сущности в исходном порядке
func (v *MatrixView) Families() []models.FamilyEntity {
	return v.families
}

// Markup возвращает поверхность вместе с непоказанными анимациями
func (v *MatrixView) Markup() []byte {
	if v.doc == nil {
		return nil
	}
	return v.doc.Markup()
}

// Static возвращает итоговое состояние поверхности без анимаций
func (v *MatrixView) Static() []byte {
	if v.doc == nil {
		return nil
	}
	return v.doc.Static()
}

// Frame возвращает поверхность с анимациями и помечает их показанными
func (v *MatrixView) Frame() []byte {
	if v.doc == nil {
		return nil
	}
	markup := v.doc.Markup()
	v.doc.Settle()
	return markup
}

func without(keys []string, removed []string) []string {
	if len(removed) == 0 {
		return keys
	}
	drop := make(map[string]bool, len(removed))
	for _, k := range removed {
		drop[k] = true
	}
	kept := keys[:0]
	for _, k := range keys {
		if !drop[k] {
			kept = append(kept, k)
		}
	}
	return kept
}
