package views

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/svg"
)

var printer = message.NewPrinter(language.English)

// FormatCount форматирует число с разделителями разрядов: 12,345
func FormatCount(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// countFormatter - форматтер значений оси Y для go-chart
func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return FormatCount(f)
	}
	return fmt.Sprintf("%v", v)
}

// valueRange возвращает диапазон оси от нуля; пустой диапазон go-chart не принимает
func valueRange(max float64) *chart.ContinuousRange {
	if max < 1 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max * 1.05}
}

// placeholder рисует пустую поверхность с сообщением
func placeholder(width, height int, text string) []byte {
	doc := svg.Document(float64(width), float64(height))
	doc.AppendNew("text").
		Set("x", svg.Num(float64(width)/2)).
		Set("y", svg.Num(float64(height)/2)).
		Set("text-anchor", "middle").
		Set("fill", "#999").
		SetText(text)
	return doc.Static()
}

// escapedText экранирует текст подписей. Канва SVG go-chart пишет тело
// <text> как есть, а подписи приходят из внешних метаданных.
type escapedText struct {
	chart.Renderer
}

func (r escapedText) Text(body string, x, y int) {
	r.Renderer.Text(html.EscapeString(body), x, y)
}

// svgRenderer - chart.SVG с экранированием текста. Ширина текста
// измеряется по исходной строке.
func svgRenderer(width, height int) (chart.Renderer, error) {
	r, err := chart.SVG(width, height)
	if err != nil {
		return nil, err
	}
	return escapedText{Renderer: r}, nil
}

func render(fn func(buf *bytes.Buffer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
