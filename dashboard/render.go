package dashboard

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/views"
)

// ErrUnknownView - представления с таким идентификатором нет
var ErrUnknownView = errors.New("неизвестное представление")

// RenderView отрисовывает одно представление без сессии: для выбора
// диапазона у графиков опроса или ключа сортировки у матрицы.
// Возвращается итоговое состояние без анимаций.
func (s *Shared) RenderView(ctx context.Context, id string, sel *models.SelectionRange, order string) ([]byte, error) {
	_, span := tracer.Start(ctx, "dashboard.RenderView")
	defer span.End()
	span.SetAttributes(attribute.String("view.id", id))

	if id == views.IDMatrix {
		app, err := s.NewMatrixApp()
		if err != nil {
			return nil, err
		}
		if order != "" {
			if err := app.view.Sort(order); err != nil {
				return nil, err
			}
		}
		return app.view.Static(), nil
	}

	var view views.View
	switch id {
	case views.IDCount:
		view = views.NewCountView(s.Dataset, s.Layout, nil)
	case views.IDAge:
		view = views.NewAgeView(s.Dataset, s.Layout)
	case views.IDPriority:
		view = views.NewPriorityView(s.Dataset, s.Layout)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, id)
	}

	if sel != nil {
		view.OnSelectionChange(sel.Start, sel.End)
	}
	if err := view.Initialize(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return view.Markup(), nil
}
