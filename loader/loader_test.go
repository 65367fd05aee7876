package loader

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

func dayJSON(day string, count int, ages string) string {
	var sums []string
	for i := 0; i < models.PriorityCount; i++ {
		sums = append(sums, fmt.Sprintf(`"sum(p%d)": %d`, i, 10+i))
	}
	return fmt.Sprintf(`{"day": %q, "count(*)": %d, %s, "age": %s}`, day, count, strings.Join(sums, ", "), ages)
}

func writeFile(t *testing.T, name, content string) FileSource {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return FileSource{Path: path}
}

type failingSource struct{ err error }

func (f failingSource) Name() string { return "failing" }

func (f failingSource) Fetch(ctx context.Context) ([]byte, error) { return nil, f.err }

func TestBuildRecordScenario(t *testing.T) {
	days, err := ParseDays([]byte("[" + dayJSON("2015-03-01", 4, `[{"age": 5, "count(*)": 3}]`) + "]"))
	require.NoError(t, err)

	records, err := BuildRecords(days)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 5, rec.Count)
	assert.Len(t, rec.Priorities, 15)
	assert.Equal(t, 10, rec.Priorities[0])
	assert.Equal(t, 24, rec.Priorities[14])
	assert.Equal(t, 3, rec.Ages[5])
	for age, n := range rec.Ages {
		if age != 5 {
			assert.Zero(t, n, "возраст %d", age)
		}
	}
	assert.Equal(t, "2015-03-01", rec.Time.Format(models.DayLayout))
}

func TestBuildRecordDropsOutOfRangeAges(t *testing.T) {
	days, err := ParseDays([]byte("[" + dayJSON("2015-03-01", 0,
		`[{"age": 0, "count(*)": 1}, {"age": 98, "count(*)": 2}, {"age": 99, "count(*)": 9}, {"age": 120, "count(*)": 9}]`) + "]"))
	require.NoError(t, err)

	rec, err := BuildRecord(0, days[0])
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Ages[0])
	assert.Equal(t, 2, rec.Ages[98])

	total := 0
	for _, n := range rec.Ages {
		total += n
	}
	assert.Equal(t, 3, total)
}

func TestAgesAlwaysDense(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		var pairs []string
		for i := 0; i < rng.Intn(40); i++ {
			pairs = append(pairs, fmt.Sprintf(`{"age": %d, "count(*)": %d}`, rng.Intn(150), rng.Intn(100)))
		}
		days, err := ParseDays([]byte("[" + dayJSON("2015-01-02", 1, "["+strings.Join(pairs, ",")+"]") + "]"))
		require.NoError(t, err)

		rec, err := BuildRecord(0, days[0])
		require.NoError(t, err)
		assert.Len(t, rec.Ages, models.AgeCount)
	}
}

func TestParseDaysAcceptsNumericStrings(t *testing.T) {
	raw := strings.Replace(dayJSON("2015-03-01", 0, `[{"age": "7", "count(*)": "2"}]`), `"count(*)": 0`, `"count(*)": "4"`, 1)
	days, err := ParseDays([]byte("[" + raw + "]"))
	require.NoError(t, err)
	assert.Equal(t, 4, days[0].Count)
	assert.Equal(t, []models.RawAge{{Age: 7, Count: 2}}, days[0].Ages)
}

func TestMalformedRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"нет даты", `[{"count(*)": 1, "age": []}]`, "day"},
		{"нет количества", `[{"day": "2015-01-01", "age": []}]`, "count(*)"},
		{"нет возрастов", `[{"day": "2015-01-01", "count(*)": 1}]`, "age"},
		{"дробное количество", `[{"day": "2015-01-01", "count(*)": 1.5, "age": []}]`, "count(*)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDays([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord))

			var recErr *RecordError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, tt.field, recErr.Field)
		})
	}
}

func TestMissingPriorityFailsBuild(t *testing.T) {
	raw := strings.Replace(dayJSON("2015-01-01", 1, "[]"), `"sum(p7)": 17, `, "", 1)
	days, err := ParseDays([]byte("[" + raw + "]"))
	require.NoError(t, err)

	_, err = BuildRecords(days)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
	assert.Contains(t, err.Error(), "sum(p7)")
}

func TestMalformedDateFailsWholeLoad(t *testing.T) {
	for _, bad := range []string{"2015-1-05", "05.01.2015", "2015-02-30", ""} {
		t.Run(bad, func(t *testing.T) {
			input := "[" + dayJSON("2015-01-01", 1, "[]") + "," + dayJSON(bad, 1, "[]") + "]"
			days, err := ParseDays([]byte(input))
			require.NoError(t, err)

			records, err := BuildRecords(days)
			assert.Nil(t, records)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
		})
	}
}

func TestBuildRecordsSortsByDay(t *testing.T) {
	input := "[" + dayJSON("2015-01-03", 1, "[]") + "," + dayJSON("2015-01-01", 2, "[]") + "]"
	days, err := ParseDays([]byte(input))
	require.NoError(t, err)

	records, err := BuildRecords(days)
	require.NoError(t, err)
	assert.Equal(t, "2015-01-01", records[0].Time.Format(models.DayLayout))
	assert.Equal(t, "2015-01-03", records[1].Time.Format(models.DayLayout))
}

func TestLoadDatasetFromFiles(t *testing.T) {
	days := writeFile(t, "perDayData.json", "["+dayJSON("2015-01-01", 1, "[]")+"]")
	meta := writeFile(t, "myWorldFields.json", `{"priorities": [{"item-title": "Education"}]}`)

	ds, err := LoadDataset(context.Background(), JSONDays{Source: days}, meta)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.JSONEq(t, `{"priorities": [{"item-title": "Education"}]}`, string(ds.Meta()))
}

func TestLoadDatasetOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/days":
			fmt.Fprint(w, "["+dayJSON("2015-01-01", 1, "[]")+"]")
		case "/meta":
			fmt.Fprint(w, `{}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ds, err := LoadDataset(context.Background(),
		JSONDays{Source: NewSource("http", srv.URL+"/days", 0)},
		NewSource("http", srv.URL+"/meta", 0))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = LoadDataset(context.Background(),
		JSONDays{Source: NewSource("http", srv.URL+"/days", 0)},
		NewSource("http", srv.URL+"/missing", 0))
	assert.True(t, errors.Is(err, ErrLoadFailure))
}

func TestLoadDatasetAllOrNothing(t *testing.T) {
	days := writeFile(t, "perDayData.json", "["+dayJSON("2015-01-01", 1, "[]")+"]")

	ds, err := LoadDataset(context.Background(), JSONDays{Source: days}, failingSource{err: errors.New("сеть недоступна")})
	assert.Nil(t, ds)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailure))
	assert.Contains(t, err.Error(), "сеть недоступна")
}

func TestLoadDatasetRejectsInvalidMeta(t *testing.T) {
	days := writeFile(t, "perDayData.json", "["+dayJSON("2015-01-01", 1, "[]")+"]")
	meta := writeFile(t, "meta.json", `{не json`)

	_, err := LoadDataset(context.Background(), JSONDays{Source: days}, meta)
	assert.True(t, errors.Is(err, ErrLoadFailure))
}

func TestLoadFamilies(t *testing.T) {
	attrs := writeFile(t, "attrs.json", `[{"Family": "A", "Wealth": "10", "NumberPriorates": 1}, {"Family": "B", "Wealth": 5, "NumberPriorates": "0"}]`)
	marriages := writeFile(t, "m.json", `[[0,1],[1,0]]`)
	business := writeFile(t, "b.json", `[[0,0],[0,0]]`)

	tables, err := LoadFamilies(context.Background(), attrs, marriages, business)
	require.NoError(t, err)
	assert.Equal(t, "A", tables.Attributes[0].Family)
	assert.Equal(t, models.FlexNumber(10), tables.Attributes[0].Wealth)
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, tables.Marriages)
}

func TestLoadFamiliesRejectsBadMatrices(t *testing.T) {
	attrs := writeFile(t, "attrs.json", `[{"Family": "A"}, {"Family": "B"}]`)
	business := writeFile(t, "b.json", `[[0,0],[0,0]]`)

	tests := []struct {
		name     string
		marriage string
	}{
		{"несимметричная", `[[0,1],[0,0]]`},
		{"не квадратная", `[[0,1,0],[1,0,0]]`},
		{"не та размерность", `[[0]]`},
		{"не числа", `[["x",0],[0,0]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marriages := writeFile(t, "m.json", tt.marriage)
			_, err := LoadFamilies(context.Background(), attrs, marriages, business)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
		})
	}
}

func TestLoadFamiliesFetchFailure(t *testing.T) {
	attrs := writeFile(t, "attrs.json", `[{"Family": "A"}]`)
	m := writeFile(t, "m.json", `[[0]]`)

	_, err := LoadFamilies(context.Background(), attrs, m, FileSource{Path: filepath.Join(t.TempDir(), "нет.json")})
	assert.True(t, errors.Is(err, ErrLoadFailure))
}
