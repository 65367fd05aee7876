package views

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/config"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// AgeProjection - количество людей по возрастам за выбранные дни
type AgeProjection struct {
	Sums [models.AgeCount]int
	Max  int
}

// DeriveAges суммирует возрасты по записям в диапазоне
func DeriveAges(ds *models.Dataset, sel *models.SelectionRange) AgeProjection {
	p := AgeProjection{Sums: SumAges(FilterRecords(ds, sel))}
	for _, n := range p.Sums {
		if n > p.Max {
			p.Max = n
		}
	}
	return p
}

// AgeView - распределение возрастов
type AgeView struct {
	data   *models.Dataset
	layout config.ChartLayout
	color  string

	selection *models.SelectionRange
	ready     bool
	markup    []byte
	err       error
}

// NewAgeView создает представление возрастов
func NewAgeView(data *models.Dataset, layout config.DashboardLayout) *AgeView {
	return &AgeView{data: data, layout: layout.Age, color: layout.AgeColor}
}

func (v *AgeView) ID() string { return IDAge }

func (v *AgeView) Initialize() error {
	v.ready = true
	return v.Render(DeriveAges(v.data, v.selection))
}

func (v *AgeView) OnSelectionChange(start, end time.Time) {
	sel := models.NewSelectionRange(start, end)
	v.selection = &sel
	if !v.ready {
		return
	}
	v.err = v.Render(DeriveAges(v.data, v.selection))
}

// Render рисует площадь под кривой распределения возрастов
func (v *AgeView) Render(p AgeProjection) error {
	xs := make([]float64, models.AgeCount)
	ys := make([]float64, models.AgeCount)
	for age, n := range p.Sums {
		xs[age] = float64(age)
		ys[age] = float64(n)
	}

	ch := chart.Chart{
		Width:      v.layout.Width,
		Height:     v.layout.Height,
		Background: chart.Style{Padding: padding(v.layout.Margin)},
		XAxis: chart.XAxis{
			Name:           "Возраст",
			ValueFormatter: chart.IntValueFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: models.AgeCount - 1},
		},
		YAxis: chart.YAxis{
			Name:           "Людей",
			ValueFormatter: countFormatter,
			Range:          valueRange(float64(p.Max)),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Возраст",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: hexColor(v.color),
					FillColor:   hexColor(v.color).WithAlpha(128),
					StrokeWidth: 1,
				},
			},
		},
	}

	markup, err := render(func(buf *bytes.Buffer) error { return ch.Render(svgRenderer, buf) })
	if err != nil {
		return fmt.Errorf("ошибка отрисовки графика возрастов: %w", err)
	}
	v.markup = markup
	return nil
}

func (v *AgeView) Markup() []byte {
	return v.markup
}

// Err возвращает ошибку последней перерисовки по событию
func (v *AgeView) Err() error {
	return v.err
}
