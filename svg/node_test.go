package svg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkupIsDeterministic(t *testing.T) {
	doc := Document(600, 600)
	g := doc.AppendNew("g").Set("transform", "translate(80,80)")
	g.AppendNew("text").Set("class", "matrix-label").SetText("Medici & co")
	g.AppendNew("path").Set("d", "M 0 0 l 10 0 l 0 10 z").Set("fill", "#ddd")

	want := `<svg xmlns="http://www.w3.org/2000/svg" width="600" height="600">` +
		`<g transform="translate(80,80)">` +
		`<text class="matrix-label">Medici &amp; co</text>` +
		`<path d="M 0 0 l 10 0 l 0 10 z" fill="#ddd"/>` +
		`</g></svg>`

	assert.Equal(t, want, string(doc.Markup()))
	assert.Equal(t, want, string(doc.Static()))
}

func TestSetReplacesInPlace(t *testing.T) {
	n := New("g").Set("a", "1").Set("b", "2").Set("a", "3")
	assert.Equal(t, `<g a="3" b="2"/>`, string(n.Markup()))
}

func TestClassSelection(t *testing.T) {
	root := New("g")
	root.AppendNew("path").Set("class", "matrix-cell matrix-col-0")
	root.AppendNew("path").Set("class", "matrix-cell matrix-col-1")
	root.AppendNew("text").Set("class", "matrix-label")

	assert.Len(t, root.SelectClass("matrix-cell"), 2)
	assert.Len(t, root.SelectClass("matrix-col-1"), 1)
	assert.Empty(t, root.SelectClass("matrix-col"))
}

func TestRemove(t *testing.T) {
	root := New("g")
	a := root.AppendNew("g")
	b := root.AppendNew("g")

	assert.True(t, root.Remove(a))
	assert.False(t, root.Remove(a))
	assert.Equal(t, []*Node{b}, root.Children)
	assert.Nil(t, a.Parent)
}

func TestTransitionSetsFinalValue(t *testing.T) {
	n := New("path").Set("fill-opacity", "1")
	n.Transition("fill-opacity", "0.2", 300*time.Millisecond)

	v, _ := n.Get("fill-opacity")
	assert.Equal(t, "0.2", v)

	tr, ok := n.Pending("fill-opacity")
	require.True(t, ok)
	assert.Equal(t, "1", tr.From)
	assert.Equal(t, "0.2", tr.To)

	assert.Equal(t,
		`<path fill-opacity="0.2"><animate attributeName="fill-opacity" from="1" to="0.2" dur="300ms" fill="freeze"/></path>`,
		string(n.Markup()))
	assert.Equal(t, `<path fill-opacity="0.2"/>`, string(n.Static()))
}

func TestTransitionSupersedesPending(t *testing.T) {
	n := New("path").Set("fill-opacity", "1")
	n.Transition("fill-opacity", "0.2", 300*time.Millisecond)
	n.Transition("fill-opacity", "1", 600*time.Millisecond)

	tr, ok := n.Pending("fill-opacity")
	require.True(t, ok)
	assert.Equal(t, "1", tr.From)
	assert.Equal(t, "1", tr.To)
	assert.Equal(t, 600*time.Millisecond, tr.Duration)

	v, _ := n.Get("fill-opacity")
	assert.Equal(t, "1", v)
}

func TestSettleStartsFromShownValue(t *testing.T) {
	n := New("path").Set("fill-opacity", "1")
	n.Transition("fill-opacity", "0.2", 300*time.Millisecond)
	n.Settle()

	_, ok := n.Pending("fill-opacity")
	assert.False(t, ok)

	n.Transition("fill-opacity", "1", 300*time.Millisecond)
	tr, _ := n.Pending("fill-opacity")
	assert.Equal(t, "0.2", tr.From)
}

func TestSetCancelsTransition(t *testing.T) {
	n := New("g")
	n.Transition("opacity", "1", time.Second)
	n.Set("opacity", "0.5")

	_, ok := n.Pending("opacity")
	assert.False(t, ok)
}

func TestTransformTransition(t *testing.T) {
	n := New("g")
	n.TransitionTransform("translate", "0 0", "0 40", "translate(0,40)", time.Second)

	assert.Equal(t,
		`<g transform="translate(0,40)"><animateTransform attributeName="transform" type="translate" from="0 0" to="0 40" dur="1000ms" fill="freeze"/></g>`,
		string(n.Markup()))
}

func TestNum(t *testing.T) {
	assert.Equal(t, "10", Num(10))
	assert.Equal(t, "31.25", Num(500.0/16))
	assert.Equal(t, "-8", Num(-8))
}

func TestTransitionFromExplicitStart(t *testing.T) {
	n := New("g").Set("opacity", "1")
	n.TransitionFrom("opacity", "0.5", "1", time.Second)
	n.TransitionFrom("opacity", "0.5", "1", time.Second)

	assert.Equal(t,
		`<g opacity="1"><animate attributeName="opacity" from="0.5" to="1" dur="1000ms" fill="freeze"/></g>`,
		string(n.Markup()))
}
