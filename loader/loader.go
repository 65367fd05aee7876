package loader

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

var tracer = otel.Tracer("loader")

// LoadDataset параллельно загружает записи по дням и метаданные.
// Загрузка выполняется по принципу "все или ничего": первая ошибка
// отменяет остальные запросы, частичный набор не возвращается.
func LoadDataset(ctx context.Context, days DaySource, meta Source) (ds *models.Dataset, err error) {
	ctx, span := tracer.Start(ctx, "loader.LoadDataset")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "загрузка набора данных не удалась")
		}
		span.End()
	}()

	var rawDays []models.RawDay
	var rawMeta []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := days.Days(gctx)
		if err != nil {
			return wrapFetch(days.Name(), err)
		}
		rawDays = d
		return nil
	})
	g.Go(func() error {
		m, err := meta.Fetch(gctx)
		if err != nil {
			return fetchError(meta.Name(), err)
		}
		rawMeta = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !json.Valid(rawMeta) {
		return nil, fmt.Errorf("%w: метаданные %s не являются JSON", ErrLoadFailure, meta.Name())
	}

	records, err := BuildRecords(rawDays)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("dataset.days", len(records)))
	return models.NewDataset(records, json.RawMessage(rawMeta)), nil
}

// LoadFamilies параллельно загружает три таблицы матрицы семей
func LoadFamilies(ctx context.Context, attributes, marriages, business Source) (tables *models.FamilyTables, err error) {
	ctx, span := tracer.Start(ctx, "loader.LoadFamilies")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "загрузка таблиц семей не удалась")
		}
		span.End()
	}()

	var rawAttrs, rawMarriages, rawBusiness []byte

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(src Source, dst *[]byte) {
		g.Go(func() error {
			b, err := src.Fetch(gctx)
			if err != nil {
				return fetchError(src.Name(), err)
			}
			*dst = b
			return nil
		})
	}
	fetch(attributes, &rawAttrs)
	fetch(marriages, &rawMarriages)
	fetch(business, &rawBusiness)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tables = &models.FamilyTables{}
	if tables.Attributes, err = ParseFamilyAttributes(rawAttrs); err != nil {
		return nil, err
	}
	if tables.Marriages, err = ParseMatrix(rawMarriages); err != nil {
		return nil, fmt.Errorf("%s: %w", marriages.Name(), err)
	}
	if tables.Business, err = ParseMatrix(rawBusiness); err != nil {
		return nil, fmt.Errorf("%s: %w", business.Name(), err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	span.SetAttributes(attribute.Int("families.count", len(tables.Attributes)))
	return tables, nil
}

// Ошибки разбора записей пробрасываются как есть, остальные считаются сбоем источника
func wrapFetch(name string, err error) error {
	if alreadyClassified(err) {
		return err
	}
	return fetchError(name, err)
}
