package jsx

import (
	"github.com/pugxlabs/pugx/pkg/js"
)

// The output tree handed to the code generator. Nodes are immutable once
// built; the transform never edits a node after construction.

// Child is any node that can appear in an element's child list.
type Child interface {
	child()
}

// AttrValue is the value of a named attribute: a string literal, an
// expression container, or a nested element.
type AttrValue interface {
	attrValue()
}

// Attribute is either a named attribute or a spread.
type Attribute interface {
	attribute()
}

// Element is a single JSX element.
//
// Tag is an identifier or dotted member path (js.Identifier / js.Member).
// SelfClosing is true iff Children is empty; an element with children always
// carries a matching closing tag when printed.
type Element struct {
	Tag         js.Expr
	Attrs       []Attribute
	Children    []Child
	SelfClosing bool
}

// Fragment groups children without an enclosing element name (`<>...</>`).
type Fragment struct {
	Children []Child
}

// Text is literal text content.
type Text struct {
	Value string
}

// ExprContainer is a braced expression position: `{expr}` as a child or
// attribute value.
type ExprContainer struct {
	Expr js.Expr
}

// StringValue is a plain string attribute value (`name="v"`).
type StringValue struct {
	Value string
}

// Attr is a named attribute. A nil Value renders as a bare boolean-true
// attribute.
type Attr struct {
	Name  string
	Value AttrValue
}

// SpreadAttr expands an object expression into attributes (`{...expr}`).
// It never carries a value.
type SpreadAttr struct {
	Expr js.Expr
}

// MapExpr is a repeated-children position: `{source.map((v, i) => body)}`.
// Body children were produced under key-injection, so every element there
// carries a key attribute.
type MapExpr struct {
	Source     js.Expr
	ValueParam string
	IndexParam string
	Body       []Child
}

// CondExpr is a conditional child: `{test ? then : else}`. An empty Else
// renders as `null`.
type CondExpr struct {
	Test js.Expr
	Then []Child
	Else []Child
}

func (*Element) child()       {}
func (*Fragment) child()      {}
func (*Text) child()          {}
func (*ExprContainer) child() {}
func (*MapExpr) child()       {}
func (*CondExpr) child()      {}

func (*Element) attrValue()       {}
func (*ExprContainer) attrValue() {}
func (*StringValue) attrValue()   {}

func (*Attr) attribute()       {}
func (*SpreadAttr) attribute() {}

// NewElement builds an element node. SelfClosing is derived from the child
// list, never set by callers.
func NewElement(tag js.Expr, attrs []Attribute, children []Child) *Element {
	return &Element{
		Tag:         tag,
		Attrs:       attrs,
		Children:    children,
		SelfClosing: len(children) == 0,
	}
}

// NewFragment builds an anonymous grouping of children. It carries no
// attributes.
func NewFragment(children ...Child) *Fragment {
	return &Fragment{Children: children}
}

// Group wraps children in a fragment only when more than one is present.
// A single child passes through; zero children yield an empty fragment.
func Group(children []Child) Child {
	if len(children) == 1 {
		return children[0]
	}
	return &Fragment{Children: children}
}

// HasAttr reports whether attrs contains a named attribute with the given
// final name.
func HasAttr(attrs []Attribute, name string) bool {
	for _, a := range attrs {
		if na, ok := a.(*Attr); ok && na.Name == name {
			return true
		}
	}
	return false
}
