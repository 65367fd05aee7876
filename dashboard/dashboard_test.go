package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/loader"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/utils"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/views"
)

func writeFile(t *testing.T, dir, name, content string) loader.FileSource {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return loader.FileSource{Path: path}
}

func dayRecords(n int) string {
	var days []string
	for i := 0; i < n; i++ {
		var fields []string
		for p := 0; p < models.PriorityCount; p++ {
			fields = append(fields, fmt.Sprintf(`"sum(p%d)": %d`, p, (i+1)*(p+2)))
		}
		days = append(days, fmt.Sprintf(`{"day": "2015-01-%02d", "count(*)": %d, %s, "age": [{"age": %d, "count(*)": 2}]}`,
			i+1, 5+i, strings.Join(fields, ", "), 20+i))
	}
	return "[" + strings.Join(days, ",") + "]"
}

func testSources(t *testing.T) Sources {
	dir := t.TempDir()
	return Sources{
		Days:       loader.JSONDays{Source: writeFile(t, dir, "days.json", dayRecords(10))},
		Meta:       writeFile(t, dir, "meta.json", `{"priorities": [{"item-title": "Education"}]}`),
		Attributes: writeFile(t, dir, "attrs.json", `[{"Family": "A", "Wealth": 10, "NumberPriorates": 1}, {"Family": "B", "Wealth": 5, "NumberPriorates": 0}]`),
		Marriages:  writeFile(t, dir, "marriages.json", `[[0,1],[1,0]]`),
		Business:   writeFile(t, dir, "business.json", `[[0,0],[0,0]]`),
	}
}

type rejectingSource struct{}

func (rejectingSource) Name() string { return "rejecting" }

func (rejectingSource) Fetch(ctx context.Context) ([]byte, error) {
	return nil, errors.New("соединение отклонено")
}

func boot(t *testing.T) *Shared {
	t.Helper()
	var buf bytes.Buffer
	shared, err := Boot(context.Background(), testSources(t), utils.NewLogger(&buf, false))
	require.NoError(t, err)
	return shared
}

func TestBootLoadsBothApplications(t *testing.T) {
	var buf bytes.Buffer
	shared, err := Boot(context.Background(), testSources(t), utils.NewLogger(&buf, false))
	require.NoError(t, err)

	assert.Equal(t, 10, shared.Dataset.Len())
	assert.Len(t, shared.Families.Attributes, 2)
	assert.NotContains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "Загружено: 10 дней, 2 семей")
}

func TestBootFailsAsAWhole(t *testing.T) {
	for _, broken := range []string{"meta", "business"} {
		t.Run(broken, func(t *testing.T) {
			src := testSources(t)
			if broken == "meta" {
				src.Meta = rejectingSource{}
			} else {
				src.Business = rejectingSource{}
			}

			var buf bytes.Buffer
			shared, err := Boot(context.Background(), src, utils.NewLogger(&buf, false))

			assert.Nil(t, shared)
			assert.ErrorIs(t, err, loader.ErrLoadFailure)
			assert.Equal(t, 1, strings.Count(buf.String(), "ERROR"))
			assert.Contains(t, buf.String(), "соединение отклонено")
		})
	}
}

func TestDashboardWiresOneSubscription(t *testing.T) {
	d := boot(t).NewDashboard()
	defer d.Close()

	assert.Equal(t, 1, d.Bus().Subscribers(models.EventSelectionChanged))

	ids := []string{}
	for _, v := range d.Views() {
		ids = append(ids, v.ID())
	}
	assert.Equal(t, []string{views.IDCount, views.IDAge, views.IDPriority}, ids)

	d.Close()
	assert.Equal(t, 0, d.Bus().Subscribers(models.EventSelectionChanged))
}

func TestDashboardSelectUpdatesLinkedViews(t *testing.T) {
	d := boot(t).NewDashboard()
	defer d.Close()
	require.NoError(t, d.Build())

	initial := d.Snapshot()
	require.Len(t, initial, 3)
	for _, f := range initial {
		assert.Contains(t, string(f.SVG), "<svg")
	}

	frames, err := d.Apply(models.Command{Type: "select", Start: "2015-01-03", End: "2015-01-05"})
	require.NoError(t, err)
	assert.Len(t, frames, 3)

	again, err := d.Apply(models.Command{Type: "select", Start: "2015-01-05", End: "2015-01-03"})
	require.NoError(t, err)
	assert.Empty(t, again, "тот же диапазон не меняет поверхности")

	cleared, err := d.Apply(models.Command{Type: "clear"})
	require.NoError(t, err)
	assert.NotEmpty(t, cleared)

	ping, err := d.Apply(models.Command{Type: "ping"})
	require.NoError(t, err)
	assert.Nil(t, ping)
}

func TestDashboardRejectsCommands(t *testing.T) {
	d := boot(t).NewDashboard()
	defer d.Close()
	require.NoError(t, d.Build())

	_, err := d.Apply(models.Command{Type: "hover"})
	assert.ErrorIs(t, err, ErrUnsupportedCommand)

	_, err = d.Apply(models.Command{Type: "select", Start: "2015-13-01", End: "2015-01-02"})
	assert.Error(t, err)
}

func TestMatrixApp(t *testing.T) {
	app, err := boot(t).NewMatrixApp()
	require.NoError(t, err)
	defer app.Close()

	snapshot := app.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, views.IDMatrix, snapshot[0].View)

	row, col := 0, 1
	frames, err := app.Apply(models.Command{Type: "hover", Row: &row, Col: &col})
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Contains(t, string(frames[0].SVG), `to="0.2"`)

	_, err = app.Apply(models.Command{Type: "leave"})
	require.NoError(t, err)

	_, err = app.Apply(models.Command{Type: "sort", Key: models.SortWealth})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, app.View().RowOrder())

	_, err = app.Apply(models.Command{Type: "sort", Key: "nope"})
	assert.ErrorIs(t, err, views.ErrUnknownSortKey)

	_, err = app.Apply(models.Command{Type: "select"})
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}

func TestRenderView(t *testing.T) {
	shared := boot(t)
	ctx := context.Background()

	sel := models.NewSelectionRange(shared.Dataset.Records()[2].Time, shared.Dataset.Records()[4].Time)
	for _, id := range []string{views.IDCount, views.IDAge, views.IDPriority} {
		markup, err := shared.RenderView(ctx, id, &sel, "")
		require.NoError(t, err, id)
		assert.Contains(t, string(markup), "<svg")
	}

	matrix, err := shared.RenderView(ctx, views.IDMatrix, nil, models.SortWealth)
	require.NoError(t, err)
	assert.NotContains(t, string(matrix), "<animate")

	_, err = shared.RenderView(ctx, "nope", nil, "")
	assert.ErrorIs(t, err, ErrUnknownView)
}
