package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

func TestDashboardPage(t *testing.T) {
	panels := []Panel{
		{View: "count", Title: "Ответы по дням", SVG: []byte(`<svg id="c"></svg>`)},
		PanelFromFrame(models.Frame{View: "age", SVG: []byte(`<svg id="a"></svg>`)}, "Возраст <18"),
	}

	var buf bytes.Buffer
	require.NoError(t, Dashboard(panels).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `data-app="dashboard"`)
	assert.Contains(t, html, `<div class="view" id="view-count"><svg id="c"></svg></div>`)
	assert.Contains(t, html, `<div class="view" id="view-age"><svg id="a"></svg></div>`)
	assert.Contains(t, html, "Возраст &lt;18")
	assert.Contains(t, html, `type: "select"`)
	assert.Contains(t, html, `"/ws/" + app`)
	assert.NotContains(t, html, `id="sort"`)
}

func TestMatrixPage(t *testing.T) {
	var buf bytes.Buffer
	panel := Panel{View: "matrix", Title: "Матрица", SVG: []byte(`<svg></svg>`)}
	require.NoError(t, Matrix(panel, []string{"index", "wealth"}).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `data-app="matrix"`)
	assert.Contains(t, html, `<option value="wealth">wealth</option>`)
	assert.Contains(t, html, `id="view-matrix"`)
	assert.Contains(t, html, `type: "hover"`)
	assert.Contains(t, html, `matrix.addEventListener("mouseout"`)
	assert.Contains(t, html, `if (event.target.closest("path.matrix-cell")) send({type: "leave"});`)
	assert.NotContains(t, html, "mouseleave")
	assert.NotContains(t, html, `id="selection"`)
}

func TestPageStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Dashboard(nil).Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
