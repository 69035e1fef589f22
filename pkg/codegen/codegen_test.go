package codegen

import (
	"testing"

	"github.com/pugxlabs/pugx/pkg/js"
	"github.com/pugxlabs/pugx/pkg/jsx"
)

func el(tag string, attrs []jsx.Attribute, children ...jsx.Child) *jsx.Element {
	return jsx.NewElement(&js.Identifier{Name: tag}, attrs, children)
}

func TestPrintSelfClosing(t *testing.T) {
	got := Print(el("br", nil))
	if got != "<br />" {
		t.Errorf("Print() = %q, want %q", got, "<br />")
	}
}

func TestPrintInlineText(t *testing.T) {
	got := Print(el("p", nil, &jsx.Text{Value: "hello"}))
	if got != "<p>hello</p>" {
		t.Errorf("Print() = %q, want %q", got, "<p>hello</p>")
	}
}

func TestPrintNestedChildren(t *testing.T) {
	got := Print(el("ul", nil,
		el("li", nil, &jsx.Text{Value: "one"}),
		el("li", nil, &jsx.Text{Value: "two"}),
	))
	want := "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintAttributes(t *testing.T) {
	attrs := []jsx.Attribute{
		&jsx.Attr{Name: "href", Value: &jsx.StringValue{Value: "/go"}},
		&jsx.Attr{Name: "disabled"},
		&jsx.Attr{Name: "title", Value: &jsx.ExprContainer{Expr: &js.Identifier{Name: "tip"}}},
		&jsx.SpreadAttr{Expr: &js.Identifier{Name: "props"}},
	}
	got := Print(el("a", attrs))
	want := `<a href="/go" disabled title={tip} {...props} />`
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintFragment(t *testing.T) {
	got := Print(jsx.NewFragment(
		el("span", nil),
		el("span", nil),
	))
	want := "<>\n  <span />\n  <span />\n</>"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintMapExpr(t *testing.T) {
	m := &jsx.MapExpr{
		Source:     &js.Identifier{Name: "items"},
		ValueParam: "item",
		IndexParam: "i",
		Body: []jsx.Child{
			el("li", nil, &jsx.ExprContainer{Expr: &js.Identifier{Name: "item"}}),
		},
	}
	got := Print(m)
	want := "{items.map((item, i) => (\n  <li>{item}</li>\n))}"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintCondExpr(t *testing.T) {
	c := &jsx.CondExpr{
		Test: &js.Identifier{Name: "show"},
		Then: []jsx.Child{el("span", nil, &jsx.Text{Value: "yes"})},
	}
	got := Print(c)
	want := "{show ? <span>yes</span> : null}"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintMemberTag(t *testing.T) {
	e := jsx.NewElement(
		&js.Member{Object: &js.Identifier{Name: "ui"}, Property: "Button"},
		nil, nil,
	)
	got := Print(e)
	if got != "<ui.Button />" {
		t.Errorf("Print() = %q, want %q", got, "<ui.Button />")
	}
}

func TestPrintEscapesText(t *testing.T) {
	got := Print(el("p", nil, &jsx.Text{Value: "a < b { c"}))
	want := "<p>a &lt; b &#123; c</p>"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintEscapesAttrQuotes(t *testing.T) {
	got := Print(el("p", []jsx.Attribute{
		&jsx.Attr{Name: "title", Value: &jsx.StringValue{Value: `say "hi"`}},
	}))
	want := `<p title="say &quot;hi&quot;" />`
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}
