package views

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/config"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/eventbus"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/trend"
)

// CountProjection - количество ответов по дням и выделенный диапазон
type CountProjection struct {
	Times     []time.Time
	Counts    []float64
	MaxCount  float64
	Selection *models.SelectionRange

	// Линия тренда по выделенным дням, nil если точек меньше двух
	Trend      *trend.Line
	TrendStart time.Time
	TrendEnd   time.Time
	trendX0    float64
	trendX1    float64
}

// DeriveCounts строит проекцию: ось времени всегда охватывает весь набор,
// тренд считается только по выделенным дням
func DeriveCounts(ds *models.Dataset, sel *models.SelectionRange) CountProjection {
	all := ds.Records()
	p := CountProjection{
		Times:     make([]time.Time, len(all)),
		Counts:    make([]float64, len(all)),
		Selection: sel,
	}
	for i, r := range all {
		p.Times[i] = r.Time
		p.Counts[i] = float64(r.Count)
		if p.Counts[i] > p.MaxCount {
			p.MaxCount = p.Counts[i]
		}
	}

	selected := FilterRecords(ds, sel)
	points := trend.DailyCounts(selected)
	if line, err := trend.Fit(points); err == nil {
		last := points[len(points)-1]
		p.Trend = line
		p.TrendStart, p.TrendEnd = points[0].Date, last.Date
		p.trendX0, p.trendX1 = points[0].X, last.X
	}
	return p
}

// CountView - количество ответов по дням. Из этого представления
// исходит выбор диапазона (Brush).
type CountView struct {
	data   *models.Dataset
	layout config.ChartLayout
	colors countColors
	bus    *eventbus.Bus

	selection *models.SelectionRange
	ready     bool
	markup    []byte
	err       error
}

type countColors struct {
	area, selection, trend string
}

// NewCountView создает представление количества ответов
func NewCountView(data *models.Dataset, layout config.DashboardLayout, bus *eventbus.Bus) *CountView {
	return &CountView{
		data:   data,
		layout: layout.Count,
		colors: countColors{area: layout.CountColor, selection: layout.SelectionColor, trend: layout.TrendColor},
		bus:    bus,
	}
}

func (v *CountView) ID() string { return IDCount }

func (v *CountView) Initialize() error {
	v.ready = true
	return v.Render(DeriveCounts(v.data, v.selection))
}

func (v *CountView) OnSelectionChange(start, end time.Time) {
	sel := models.NewSelectionRange(start, end)
	v.selection = &sel
	if !v.ready {
		return
	}
	v.err = v.Render(DeriveCounts(v.data, v.selection))
}

// Brush публикует новый диапазон выбора на шине
func (v *CountView) Brush(start, end time.Time) int {
	return v.bus.Publish(models.EventSelectionChanged, models.NewSelectionRange(start, end))
}

// ClearBrush сбрасывает выбор на весь диапазон набора
func (v *CountView) ClearBrush() int {
	span, ok := v.data.Span()
	if !ok {
		return 0
	}
	return v.Brush(span.Start, span.End)
}

// Selection возвращает текущий диапазон выбора, nil - весь набор
func (v *CountView) Selection() *models.SelectionRange {
	return v.selection
}

// Render рисует проекцию. Повторная отрисовка той же проекции дает тот же SVG.
func (v *CountView) Render(p CountProjection) error {
	if len(p.Times) == 0 {
		v.markup = placeholder(v.layout.Width, v.layout.Height, "Нет данных")
		return nil
	}

	series := make([]chart.Series, 0, 3)
	if band, ok := selectionBand(p); ok {
		series = append(series, chart.TimeSeries{
			Name:    "Выбор",
			XValues: band,
			YValues: []float64{p.MaxCount, p.MaxCount},
			Style: chart.Style{
				StrokeColor: drawing.ColorTransparent,
				FillColor:   hexColor(v.colors.selection).WithAlpha(48),
			},
		})
	}

	responses := chart.Style{
		StrokeColor: hexColor(v.colors.area),
		FillColor:   hexColor(v.colors.area).WithAlpha(96),
		StrokeWidth: 1,
	}
	// Один день рисуется точкой
	if len(p.Times) == 1 {
		responses.DotColor = hexColor(v.colors.area)
		responses.DotWidth = 4
	}
	series = append(series, chart.TimeSeries{
		Name:    "Ответы",
		XValues: p.Times,
		YValues: p.Counts,
		Style:   responses,
	})

	if p.Trend != nil {
		series = append(series, chart.TimeSeries{
			Name:    "Тренд",
			XValues: []time.Time{p.TrendStart, p.TrendEnd},
			YValues: []float64{p.Trend.Predict(p.trendX0), p.Trend.Predict(p.trendX1)},
			Style: chart.Style{
				StrokeColor:     hexColor(v.colors.trend),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 3},
			},
		})
	}

	ch := chart.Chart{
		Width:      v.layout.Width,
		Height:     v.layout.Height,
		Background: chart.Style{Padding: padding(v.layout.Margin)},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(models.DayLayout),
			Range:          timeRange(p.Times),
		},
		YAxis: chart.YAxis{
			Name:           "Ответов в день",
			ValueFormatter: countFormatter,
			Range:          valueRange(p.MaxCount),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	markup, err := render(func(buf *bytes.Buffer) error { return ch.Render(svgRenderer, buf) })
	if err != nil {
		return fmt.Errorf("ошибка отрисовки графика количества: %w", err)
	}
	v.markup = markup
	return nil
}

// Markup возвращает последний отрисованный SVG
func (v *CountView) Markup() []byte {
	return v.markup
}

// Err возвращает ошибку последней перерисовки по событию
func (v *CountView) Err() error {
	return v.err
}

// timeRange охватывает все дни набора. Единственный день получает
// по полдня с каждой стороны.
func timeRange(times []time.Time) *chart.ContinuousRange {
	first, last := times[0], times[len(times)-1]
	if !first.Before(last) {
		first, last = first.Add(-12*time.Hour), last.Add(12*time.Hour)
	}
	return &chart.ContinuousRange{
		Min: chart.TimeToFloat64(first),
		Max: chart.TimeToFloat64(last),
	}
}

// selectionBand обрезает выбор по границам набора
func selectionBand(p CountProjection) ([]time.Time, bool) {
	if p.Selection == nil {
		return nil, false
	}
	first, last := p.Times[0], p.Times[len(p.Times)-1]
	start, end := p.Selection.Start, p.Selection.End
	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	if start.After(end) {
		return nil, false
	}
	return []time.Time{start, end}, true
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func padding(m config.Margin) chart.Box {
	return chart.Box{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
}
