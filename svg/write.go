package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
)

// Namespace - пространство имен SVG
const Namespace = "http://www.w3.org/2000/svg"

// Document создает корневой элемент svg заданного размера
func Document(width, height float64) *Node {
	return New("svg").
		Set("xmlns", Namespace).
		Set("width", Num(width)).
		Set("height", Num(height))
}

// Num форматирует число без лишних нулей
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Markup сериализует поддерево вместе с непоказанными анимациями
func (n *Node) Markup() []byte {
	var buf bytes.Buffer
	n.write(&buf, true)
	return buf.Bytes()
}

// Static сериализует только итоговое состояние, без анимаций
func (n *Node) Static() []byte {
	var buf bytes.Buffer
	n.write(&buf, false)
	return buf.Bytes()
}

// WriteTo реализует io.WriterTo
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	m := n.Markup()
	written, err := w.Write(m)
	return int64(written), err
}

func (n *Node) write(buf *bytes.Buffer, animations bool) {
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.attrs {
		writeAttr(buf, a.name, a.value)
	}

	if n.Text == "" && len(n.Children) == 0 && (!animations || len(n.transitions) == 0) {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')

	if n.Text != "" {
		xml.EscapeText(buf, []byte(n.Text))
	}
	for _, c := range n.Children {
		c.write(buf, animations)
	}
	if animations {
		for _, t := range n.transitions {
			writeTransition(buf, t)
		}
	}

	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
}

func writeTransition(buf *bytes.Buffer, t Transition) {
	if t.Type != "" {
		buf.WriteString("<animateTransform")
		writeAttr(buf, "attributeName", t.Attr)
		writeAttr(buf, "type", t.Type)
	} else {
		buf.WriteString("<animate")
		writeAttr(buf, "attributeName", t.Attr)
	}
	writeAttr(buf, "from", t.From)
	writeAttr(buf, "to", t.To)
	writeAttr(buf, "dur", strconv.FormatInt(t.Duration.Milliseconds(), 10)+"ms")
	writeAttr(buf, "fill", "freeze")
	buf.WriteString("/>")
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	xml.EscapeText(buf, []byte(value))
	buf.WriteByte('"')
}
