package views

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/config"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// PriorityProjection - сумма голосов по каждому приоритету
type PriorityProjection struct {
	Sums [models.PriorityCount]int
	Max  int
}

// DerivePriorities суммирует голоса по записям в диапазоне
func DerivePriorities(ds *models.Dataset, sel *models.SelectionRange) PriorityProjection {
	p := PriorityProjection{Sums: SumPriorities(FilterRecords(ds, sel))}
	for _, n := range p.Sums {
		if n > p.Max {
			p.Max = n
		}
	}
	return p
}

// PriorityLabels читает названия приоритетов из метаданных.
// Если названия нет, используется "Priority N".
func PriorityLabels(meta []byte) [models.PriorityCount]string {
	var labels [models.PriorityCount]string
	for i := range labels {
		title := gjson.GetBytes(meta, fmt.Sprintf("priorities.%d.item-title", i))
		if title.Exists() && title.String() != "" {
			labels[i] = title.String()
		} else {
			labels[i] = fmt.Sprintf("Priority %d", i+1)
		}
	}
	return labels
}

// PriorityView - голоса по приоритетам
type PriorityView struct {
	data   *models.Dataset
	layout config.ChartLayout
	color  string
	labels [models.PriorityCount]string

	selection *models.SelectionRange
	ready     bool
	markup    []byte
	err       error
}

// NewPriorityView создает представление приоритетов
func NewPriorityView(data *models.Dataset, layout config.DashboardLayout) *PriorityView {
	return &PriorityView{
		data:   data,
		layout: layout.Priority,
		color:  layout.PriorityColor,
		labels: PriorityLabels(data.Meta()),
	}
}

func (v *PriorityView) ID() string { return IDPriority }

func (v *PriorityView) Initialize() error {
	v.ready = true
	return v.Render(DerivePriorities(v.data, v.selection))
}

func (v *PriorityView) OnSelectionChange(start, end time.Time) {
	sel := models.NewSelectionRange(start, end)
	v.selection = &sel
	if !v.ready {
		return
	}
	v.err = v.Render(DerivePriorities(v.data, v.selection))
}

// Render рисует столбчатую диаграмму
func (v *PriorityView) Render(p PriorityProjection) error {
	plotWidth := v.layout.Width - v.layout.Margin.Left - v.layout.Margin.Right
	pitch := plotWidth / models.PriorityCount

	bars := make([]chart.Value, models.PriorityCount)
	for i, n := range p.Sums {
		bars[i] = chart.Value{
			Value: float64(n),
			Label: v.labels[i],
			Style: chart.Style{
				FillColor:   hexColor(v.color),
				StrokeColor: hexColor(v.color),
			},
		}
	}

	bc := chart.BarChart{
		Width:      v.layout.Width,
		Height:     v.layout.Height,
		Background: chart.Style{Padding: padding(v.layout.Margin)},
		BarWidth:   pitch * 3 / 4,
		BarSpacing: pitch / 4,
		YAxis: chart.YAxis{
			ValueFormatter: countFormatter,
			Range:          valueRange(float64(p.Max)),
		},
		Bars: bars,
	}

	markup, err := render(func(buf *bytes.Buffer) error { return bc.Render(svgRenderer, buf) })
	if err != nil {
		return fmt.Errorf("ошибка отрисовки графика приоритетов: %w", err)
	}
	v.markup = markup
	return nil
}

func (v *PriorityView) Markup() []byte {
	return v.markup
}

// Labels возвращает подписи приоритетов
func (v *PriorityView) Labels() [models.PriorityCount]string {
	return v.labels
}

// Err возвращает ошибку последней перерисовки по событию
func (v *PriorityView) Err() error {
	return v.err
}
