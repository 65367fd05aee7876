// database/survey.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DaySource строит записи по дням агрегирующими запросами к таблице ответов.
// Таблица содержит по строке на ответ: day DATE, age INT, p0..p14.
type DaySource struct {
	db    *sql.DB
	table string
}

// NewDaySource проверяет имя таблицы и создает источник
func NewDaySource(db *sql.DB, table string) (*DaySource, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("недопустимое имя таблицы %q", table)
	}
	return &DaySource{db: db, table: table}, nil
}

func (s *DaySource) Name() string {
	return "mysql:" + s.table
}

// Days возвращает записи в том же виде, что и JSON-выгрузка
func (s *DaySource) Days(ctx context.Context) ([]models.RawDay, error) {
	days, index, err := s.queryDays(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.queryAges(ctx, days, index); err != nil {
		return nil, err
	}
	return days, nil
}

func (s *DaySource) queryDays(ctx context.Context) ([]models.RawDay, map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, buildDayQuery(s.table))
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка запроса записей по дням: %w", err)
	}
	defer rows.Close()

	var days []models.RawDay
	index := make(map[string]int)
	for rows.Next() {
		var day models.RawDay
		sums := make([]sql.NullInt64, models.PriorityCount)

		dest := []any{&day.Day, &day.Count}
		for i := range sums {
			dest = append(dest, &sums[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("ошибка чтения записи по дням: %w", err)
		}

		day.Sums = make(map[string]int, models.PriorityCount)
		for i, v := range sums {
			day.Sums[fmt.Sprintf("sum(p%d)", i)] = int(v.Int64)
		}
		index[day.Day] = len(days)
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return days, index, nil
}

func (s *DaySource) queryAges(ctx context.Context, days []models.RawDay, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, buildAgeQuery(s.table))
	if err != nil {
		return fmt.Errorf("ошибка запроса возрастов: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		var age models.RawAge
		if err := rows.Scan(&day, &age.Age, &age.Count); err != nil {
			return fmt.Errorf("ошибка чтения возрастов: %w", err)
		}
		i, ok := index[day]
		if !ok {
			continue
		}
		days[i].Ages = append(days[i].Ages, age)
	}
	return rows.Err()
}

func buildDayQuery(table string) string {
	var b strings.Builder
	b.WriteString("SELECT DATE_FORMAT(day, '%Y-%m-%d') AS day, COUNT(*)")
	for i := 0; i < models.PriorityCount; i++ {
		fmt.Fprintf(&b, ", SUM(p%d)", i)
	}
	fmt.Fprintf(&b, " FROM `%s` GROUP BY day ORDER BY day", table)
	return b.String()
}

func buildAgeQuery(table string) string {
	return fmt.Sprintf("SELECT DATE_FORMAT(day, '%%Y-%%m-%%d') AS day, age, COUNT(*) FROM `%s` WHERE age IS NOT NULL GROUP BY day, age ORDER BY day, age", table)
}
