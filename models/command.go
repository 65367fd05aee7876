package models

// Command - команда от браузера, пришедшая по WebSocket
type Command struct {
	Type  string `json:"type" validate:"required,oneof=select clear hover leave sort ping"`
	Start string `json:"start,omitempty" validate:"required_if=Type select,omitempty,datetime=2006-01-02"`
	End   string `json:"end,omitempty" validate:"required_if=Type select,omitempty,datetime=2006-01-02"`
	Row   *int   `json:"row,omitempty" validate:"required_if=Type hover,omitempty,min=0"`
	Col   *int   `json:"col,omitempty" validate:"required_if=Type hover,omitempty,min=0"`
	Key   string `json:"key,omitempty" validate:"required_if=Type sort"`
}

// Frame - отрисованная поверхность одного представления
type Frame struct {
	View string
	SVG  []byte
}
