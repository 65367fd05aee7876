package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// Point представляет точку данных для линейной регрессии
type Point struct {
	X    float64   // Порядковый номер дня относительно начала периода
	Y    float64   // Количество ответов за день
	Date time.Time // Фактическая дата
}

// Line содержит коэффициенты линии тренда y = A*x + B
type Line struct {
	A           float64 // Коэффициент наклона
	B           float64 // Сдвиг
	R           float64 // Коэффициент корреляции Пирсона
	R2          float64 // Коэффициент детерминации
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// RoundToThousandth округляет число до тысячных (3 знака после запятой)
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// DailyCounts превращает записи в точки: X - номер дня от первой записи
func DailyCounts(records []models.Record) []Point {
	if len(records) == 0 {
		return nil
	}

	origin := records[0].Time
	points := make([]Point, len(records))
	for i, r := range records {
		points[i] = Point{
			X:    math.Round(r.Time.Sub(origin).Hours() / 24),
			Y:    float64(r.Count),
			Date: r.Time,
		}
	}
	return points
}

// Fit рассчитывает линию тренда методом наименьших квадратов
func Fit(points []Point) (*Line, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("для расчета линии тренда требуется минимум 2 точки, получено: %d", len(points))
	}

	minDate := points[0].Date
	maxDate := points[0].Date
	for _, p := range points {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}
		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	// a = (n*sum(x*y) - sum(x)*sum(y)) / (n*sum(x^2) - (sum(x))^2)
	// b = (sum(y) - a*sum(x)) / n
	n := float64(len(points))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumX2 += p.X * p.X
		sumY2 += p.Y * p.Y
	}

	denominator := n*sumX2 - sumX*sumX
	if math.Abs(denominator) < 1e-10 {
		return nil, fmt.Errorf("все X одинаковы, невозможно вычислить наклон")
	}
	a := (n*sumXY - sumX*sumY) / denominator
	b := (sumY - a*sumX) / n

	var r float64
	spread := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if math.Abs(spread) >= 1e-10 {
		r = (n*sumXY - sumX*sumY) / spread
	}

	return &Line{
		A:           RoundToThousandth(a),
		B:           RoundToThousandth(b),
		R:           RoundToThousandth(r),
		R2:          RoundToThousandth(r * r),
		PeriodStart: minDate,
		PeriodEnd:   maxDate,
	}, nil
}

// Predict возвращает значение линии тренда в точке x
func (l *Line) Predict(x float64) float64 {
	return RoundToThousandth(l.A*x + l.B)
}
