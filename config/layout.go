package config

// Margin - отступы области рисования
type Margin struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// ChartLayout - размеры графика панели опроса
type ChartLayout struct {
	Width  int
	Height int
	Margin Margin
}

// DashboardLayout - размеры всех графиков панели опроса
type DashboardLayout struct {
	Count    ChartLayout
	Age      ChartLayout
	Priority ChartLayout

	CountColor     string
	SelectionColor string
	TrendColor     string
	AgeColor       string
	PriorityColor  string
}

// MatrixLayout - размеры и цвета матрицы семей
type MatrixLayout struct {
	Size   float64
	Margin Margin

	ColorMarriage   string
	ColorBusiness   string
	ColorNoRelation string
}

// DefaultDashboardLayout возвращает размеры панели опроса
func DefaultDashboardLayout() DashboardLayout {
	return DashboardLayout{
		Count:    ChartLayout{Width: 800, Height: 240, Margin: Margin{Top: 20, Right: 20, Bottom: 40, Left: 60}},
		Age:      ChartLayout{Width: 420, Height: 300, Margin: Margin{Top: 20, Right: 20, Bottom: 40, Left: 60}},
		Priority: ChartLayout{Width: 640, Height: 340, Margin: Margin{Top: 20, Right: 20, Bottom: 100, Left: 60}},

		CountColor:     "#8c9eff",
		SelectionColor: "#3d5afe",
		TrendColor:     "#e65100",
		AgeColor:       "#26a69a",
		PriorityColor:  "#7e57c2",
	}
}

// DefaultMatrixLayout возвращает размеры матрицы семей
func DefaultMatrixLayout() MatrixLayout {
	return MatrixLayout{
		Size:   600,
		Margin: Margin{Top: 80, Right: 20, Bottom: 20, Left: 80},

		ColorMarriage:   "#8686bf",
		ColorBusiness:   "#fbad52",
		ColorNoRelation: "#ddd",
	}
}

// Width возвращает ширину области рисования матрицы
func (l MatrixLayout) Width() float64 {
	return l.Size - float64(l.Margin.Left) - float64(l.Margin.Right)
}

// Height возвращает высоту области рисования матрицы
func (l MatrixLayout) Height() float64 {
	return l.Size - float64(l.Margin.Top) - float64(l.Margin.Bottom)
}
