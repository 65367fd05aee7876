// Package svg - удерживаемое дерево SVG-узлов, которое играет роль
// поверхности рисования представлений без браузера.
package svg

import (
	"strings"
	"time"
)

type attr struct {
	name  string
	value string
}

// Transition - анимация атрибута. Новая анимация того же атрибута
// вытесняет предыдущую, итоговое значение всегда равно последнему To.
type Transition struct {
	Attr     string
	From     string
	To       string
	Duration time.Duration

	// Type задается для transform, например "translate"
	Type string
}

// Node - элемент SVG
type Node struct {
	Tag      string
	Text     string
	Parent   *Node
	Children []*Node

	attrs       []attr
	transitions []Transition
}

// New создает элемент с тегом tag
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// Set задает атрибут. Незавершенная анимация этого атрибута отменяется.
func (n *Node) Set(name, value string) *Node {
	n.dropTransition(name)
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return n
		}
	}
	n.attrs = append(n.attrs, attr{name: name, value: value})
	return n
}

// Get возвращает значение атрибута
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// SetText задает текстовое содержимое
func (n *Node) SetText(text string) *Node {
	n.Text = text
	return n
}

// Append добавляет дочерний элемент и возвращает его
func (n *Node) Append(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// AppendNew создает и добавляет дочерний элемент
func (n *Node) AppendNew(tag string) *Node {
	return n.Append(New(tag))
}

// Remove удаляет дочерний элемент
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// Classes возвращает список классов элемента
func (n *Node) Classes() []string {
	v, _ := n.Get("class")
	return strings.Fields(v)
}

// HasClass проверяет наличие класса
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// Walk обходит поддерево в глубину, начиная с самого узла
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Select возвращает узлы поддерева, удовлетворяющие условию
func (n *Node) Select(match func(*Node) bool) []*Node {
	var result []*Node
	n.Walk(func(x *Node) {
		if match(x) {
			result = append(result, x)
		}
	})
	return result
}

// SelectClass возвращает узлы поддерева с классом class
func (n *Node) SelectClass(class string) []*Node {
	return n.Select(func(x *Node) bool { return x.HasClass(class) })
}

// Transition запускает анимацию атрибута к значению to.
// Атрибут сразу получает итоговое значение. Если анимация этого атрибута
// еще не была показана, новая начинается с ее исходного значения.
func (n *Node) Transition(name, to string, d time.Duration) *Node {
	return n.transition(Transition{Attr: name, To: to, Duration: d})
}

// TransitionFrom запускает анимацию с явно заданным начальным значением
func (n *Node) TransitionFrom(name, from, to string, d time.Duration) *Node {
	n.dropTransition(name)
	n.setAttr(name, to)
	n.transitions = append(n.transitions, Transition{Attr: name, From: from, To: to, Duration: d})
	return n
}

// TransitionTransform анимирует transform типа kind (например translate)
// между значениями from и to в нотации SMIL ("0 40")
func (n *Node) TransitionTransform(kind, from, to, final string, d time.Duration) *Node {
	n.dropTransition("transform")
	n.setAttr("transform", final)
	n.transitions = append(n.transitions, Transition{
		Attr:     "transform",
		From:     from,
		To:       to,
		Duration: d,
		Type:     kind,
	})
	return n
}

func (n *Node) transition(t Transition) *Node {
	if prev, ok := n.Pending(t.Attr); ok {
		t.From = prev.From
		n.dropTransition(t.Attr)
	} else if cur, ok := n.Get(t.Attr); ok {
		t.From = cur
	} else {
		t.From = t.To
	}
	n.setAttr(t.Attr, t.To)
	n.transitions = append(n.transitions, t)
	return n
}

// Pending возвращает непоказанную анимацию атрибута
func (n *Node) Pending(name string) (Transition, bool) {
	for _, t := range n.transitions {
		if t.Attr == name {
			return t, true
		}
	}
	return Transition{}, false
}

// Settle помечает все анимации поддерева как показанные
func (n *Node) Settle() {
	n.Walk(func(x *Node) { x.transitions = nil })
}

func (n *Node) setAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return
		}
	}
	n.attrs = append(n.attrs, attr{name: name, value: value})
}

func (n *Node) dropTransition(name string) {
	for i, t := range n.transitions {
		if t.Attr == name {
			n.transitions = append(n.transitions[:i], n.transitions[i+1:]...)
			return
		}
	}
}
