package dashboard

import (
	"fmt"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/views"
)

// MatrixApp - приложение матрицы семей
type MatrixApp struct {
	view *views.MatrixView
}

// NewMatrixApp создает и отрисовывает матрицу
func (s *Shared) NewMatrixApp() (*MatrixApp, error) {
	view, err := views.NewMatrixView(s.Families, s.MatrixLayout)
	if err != nil {
		return nil, err
	}
	if err := view.Initialize(); err != nil {
		return nil, err
	}
	return &MatrixApp{view: view}, nil
}

// View возвращает представление матрицы
func (m *MatrixApp) View() *views.MatrixView {
	return m.view
}

// Snapshot возвращает текущий кадр матрицы
func (m *MatrixApp) Snapshot() []models.Frame {
	return []models.Frame{{View: views.IDMatrix, SVG: m.view.Frame()}}
}

// Apply выполняет команду наведения, ухода или сортировки
func (m *MatrixApp) Apply(cmd models.Command) ([]models.Frame, error) {
	var err error
	switch cmd.Type {
	case "hover":
		if cmd.Row == nil || cmd.Col == nil {
			return nil, fmt.Errorf("%w: hover без row/col", views.ErrCellOutOfRange)
		}
		err = m.view.Hover(*cmd.Row, *cmd.Col)
	case "leave":
		err = m.view.Leave()
	case "sort":
		err = m.view.Sort(cmd.Key)
	case "ping":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd.Type)
	}
	if err != nil {
		return nil, err
	}
	return m.Snapshot(), nil
}

func (m *MatrixApp) Close() {}
