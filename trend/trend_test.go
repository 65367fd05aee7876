package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

func day(d int) time.Time {
	return time.Date(2015, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestFitExactLine(t *testing.T) {
	points := []Point{
		{X: 0, Y: 1, Date: day(1)},
		{X: 1, Y: 3, Date: day(2)},
		{X: 2, Y: 5, Date: day(3)},
	}

	line, err := Fit(points)
	require.NoError(t, err)
	assert.Equal(t, 2.0, line.A)
	assert.Equal(t, 1.0, line.B)
	assert.Equal(t, 1.0, line.R)
	assert.Equal(t, 1.0, line.R2)
	assert.Equal(t, day(1), line.PeriodStart)
	assert.Equal(t, day(3), line.PeriodEnd)
	assert.Equal(t, 11.0, line.Predict(5))
}

func TestFitFlatLine(t *testing.T) {
	line, err := Fit([]Point{{X: 0, Y: 4}, {X: 1, Y: 4}, {X: 2, Y: 4}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, line.A)
	assert.Equal(t, 4.0, line.B)
	assert.Equal(t, 0.0, line.R)
}

func TestFitErrors(t *testing.T) {
	_, err := Fit([]Point{{X: 0, Y: 1}})
	assert.Error(t, err)

	_, err = Fit([]Point{{X: 3, Y: 1}, {X: 3, Y: 2}})
	assert.Error(t, err)
}

func TestDailyCounts(t *testing.T) {
	records := []models.Record{
		{Time: day(1), Count: 2},
		{Time: day(4), Count: 7},
	}

	points := DailyCounts(records)
	require.Len(t, points, 2)
	assert.Equal(t, Point{X: 0, Y: 2, Date: day(1)}, points[0])
	assert.Equal(t, Point{X: 3, Y: 7, Date: day(4)}, points[1])
	assert.Nil(t, DailyCounts(nil))
}

func TestRoundToThousandth(t *testing.T) {
	assert.Equal(t, 1.235, RoundToThousandth(1.2346))
	assert.Equal(t, -0.333, RoundToThousandth(-1.0/3))
}
