// Package views содержит представления панели опроса и матрицы семей.
// Каждое представление владеет своей поверхностью рисования и
// пересчитывает проекцию общих данных самостоятельно.
package views

import (
	"time"
)

// Идентификаторы представлений
const (
	IDCount    = "count"
	IDAge      = "age"
	IDPriority = "priority"
	IDMatrix   = "matrix"
)

// View - общий набор возможностей представления
type View interface {
	ID() string

	// Initialize создает поверхность рисования и выполняет первую отрисовку
	Initialize() error

	// OnSelectionChange пересчитывает проекцию по новому диапазону и
	// перерисовывает. До Initialize диапазон только запоминается.
	OnSelectionChange(start, end time.Time)

	// Markup возвращает текущее состояние поверхности в виде SVG
	Markup() []byte
}
