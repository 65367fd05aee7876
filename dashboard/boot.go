// Package dashboard собирает приложения из общих данных: панель связанных
// графиков опроса и матрицу семей. Каждое подключение получает свой
// экземпляр приложения поверх одного набора данных только для чтения.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/config"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/database"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/loader"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/utils"
)

var tracer = otel.Tracer("dashboard")

// Sources - все источники, которые нужны обоим приложениям
type Sources struct {
	Days       loader.DaySource
	Meta       loader.Source
	Attributes loader.Source
	Marriages  loader.Source
	Business   loader.Source
}

// Count возвращает количество источников
func (s Sources) Count() int {
	return 5
}

// NewSources создает источники по конфигурации. Для источника mysql
// открывается соединение, которое закрывает возвращаемая функция.
func NewSources(cfg *config.Config) (Sources, func(), error) {
	kind := cfg.DataSource
	if kind == config.SourceMySQL {
		kind = config.SourceFile
	}
	src := Sources{
		Meta:       loader.NewSource(kind, cfg.MetaData, cfg.FetchTimeout),
		Attributes: loader.NewSource(kind, cfg.FamilyAttributes, cfg.FetchTimeout),
		Marriages:  loader.NewSource(kind, cfg.Marriages, cfg.FetchTimeout),
		Business:   loader.NewSource(kind, cfg.Business, cfg.FetchTimeout),
	}

	if cfg.DataSource != config.SourceMySQL {
		src.Days = loader.JSONDays{Source: loader.NewSource(kind, cfg.DayData, cfg.FetchTimeout)}
		return src, func() {}, nil
	}

	db, err := database.Connect(cfg.MySQL)
	if err != nil {
		return Sources{}, nil, err
	}
	days, err := database.NewDaySource(db, cfg.MySQL.Table)
	if err != nil {
		db.Close()
		return Sources{}, nil, err
	}
	src.Days = days
	return src, func() { db.Close() }, nil
}

// Shared - общие данные и настройки, из которых создаются приложения.
// После Boot не изменяются.
type Shared struct {
	Dataset  *models.Dataset
	Families *models.FamilyTables

	Layout       config.DashboardLayout
	MatrixLayout config.MatrixLayout

	logger *utils.Logger
}

// Boot параллельно загружает все источники. Если хотя бы один источник
// недоступен, ни одно приложение не создается, а ошибка логируется один раз.
func Boot(ctx context.Context, src Sources, logger *utils.Logger) (*Shared, error) {
	ctx, span := tracer.Start(ctx, "dashboard.Boot")
	defer span.End()

	start := time.Now()
	logger.LogLoadStart(src.Count())

	var dataset *models.Dataset
	var families *models.FamilyTables

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds, err := loader.LoadDataset(gctx, src.Days, src.Meta)
		if err != nil {
			return fmt.Errorf("панель опроса: %w", err)
		}
		dataset = ds
		return nil
	})
	g.Go(func() error {
		tables, err := loader.LoadFamilies(gctx, src.Attributes, src.Marriages, src.Business)
		if err != nil {
			return fmt.Errorf("матрица семей: %w", err)
		}
		families = tables
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		logger.Error("Загрузка данных не удалась: %v", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("dataset.days", dataset.Len()),
		attribute.Int("families.count", len(families.Attributes)),
	)
	logger.LogLoadComplete(start, dataset.Len(), len(families.Attributes))

	return NewShared(dataset, families, logger), nil
}

// NewShared собирает общие данные с раскладкой по умолчанию
func NewShared(ds *models.Dataset, families *models.FamilyTables, logger *utils.Logger) *Shared {
	if logger == nil {
		logger = utils.NewLogger(io.Discard, false)
	}
	return &Shared{
		Dataset:      ds,
		Families:     families,
		Layout:       config.DefaultDashboardLayout(),
		MatrixLayout: config.DefaultMatrixLayout(),
		logger:       logger,
	}
}
