package dashboard

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/eventbus"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/views"
)

// ErrUnsupportedCommand - приложение не обрабатывает такую команду
var ErrUnsupportedCommand = errors.New("команда не поддерживается")

// Dashboard - панель связанных графиков опроса. Представления не знают
// друг о друге, выбор диапазона доходит до них только через шину.
type Dashboard struct {
	shared *Shared
	bus    *eventbus.Bus

	count    *views.CountView
	age      *views.AgeView
	priority *views.PriorityView
	views    []views.View

	unsubscribe func()
	sent        map[string][]byte
}

// NewDashboard создает представления и подписывает их на смену выбора.
// Подписка одна: обработчик по очереди вызывает OnSelectionChange
// у возрастов, приоритетов и количества.
func (s *Shared) NewDashboard() *Dashboard {
	bus := eventbus.New()
	d := &Dashboard{
		shared:   s,
		bus:      bus,
		count:    views.NewCountView(s.Dataset, s.Layout, bus),
		age:      views.NewAgeView(s.Dataset, s.Layout),
		priority: views.NewPriorityView(s.Dataset, s.Layout),
		sent:     make(map[string][]byte),
	}
	d.views = []views.View{d.count, d.age, d.priority}

	subscribers := []views.View{d.age, d.priority, d.count}
	d.unsubscribe = eventbus.SubscribeTyped(bus, models.EventSelectionChanged, func(sel models.SelectionRange) {
		for _, v := range subscribers {
			v.OnSelectionChange(sel.Start, sel.End)
		}
	})
	return d
}

// Build выполняет первую отрисовку всех представлений
func (d *Dashboard) Build() error {
	for _, v := range d.views {
		if err := v.Initialize(); err != nil {
			return fmt.Errorf("представление %s: %w", v.ID(), err)
		}
	}
	return nil
}

// Bus возвращает шину панели
func (d *Dashboard) Bus() *eventbus.Bus {
	return d.bus
}

// Views возвращает представления панели
func (d *Dashboard) Views() []views.View {
	return d.views
}

// Snapshot возвращает поверхности всех представлений
func (d *Dashboard) Snapshot() []models.Frame {
	frames := make([]models.Frame, 0, len(d.views))
	for _, v := range d.views {
		markup := v.Markup()
		d.sent[v.ID()] = markup
		frames = append(frames, models.Frame{View: v.ID(), SVG: markup})
	}
	return frames
}

// Apply выполняет команду и возвращает поверхности, которые изменились
func (d *Dashboard) Apply(cmd models.Command) ([]models.Frame, error) {
	switch cmd.Type {
	case "select", "brush":
		sel, err := models.ParseSelectionRange(cmd.Start, cmd.End)
		if err != nil {
			return nil, err
		}
		d.count.Brush(sel.Start, sel.End)
	case "clear":
		d.count.ClearBrush()
	case "ping":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd.Type)
	}

	if err := d.renderErr(); err != nil {
		return nil, err
	}
	frames := d.changed()
	d.shared.logger.Debug("Команда %s: обновлено представлений %d", cmd.Type, len(frames))
	return frames, nil
}

type failing interface {
	Err() error
}

func (d *Dashboard) renderErr() error {
	for _, v := range d.views {
		if f, ok := v.(failing); ok && f.Err() != nil {
			return fmt.Errorf("представление %s: %w", v.ID(), f.Err())
		}
	}
	return nil
}

func (d *Dashboard) changed() []models.Frame {
	var frames []models.Frame
	for _, v := range d.views {
		markup := v.Markup()
		if bytes.Equal(d.sent[v.ID()], markup) {
			continue
		}
		d.sent[v.ID()] = markup
		frames = append(frames, models.Frame{View: v.ID(), SVG: markup})
	}
	return frames
}

// Close отписывает представления от шины
func (d *Dashboard) Close() {
	d.unsubscribe()
}
