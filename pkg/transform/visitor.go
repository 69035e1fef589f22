// Package transform rewrites a parsed template tree into a JSX element tree.
//
// This is the compiler's core: attribute semantics (renames, class merging,
// spreads, the escape rule), recursive child traversal, resolution of
// interpolation references, and list-key propagation for repeated children.
// One Context is created per template occurrence and threaded by value; a
// diagnostic aborts the whole occurrence with no partial output.
package transform

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/pugxlabs/pugx/pkg/interp"
	"github.com/pugxlabs/pugx/pkg/js"
	"github.com/pugxlabs/pugx/pkg/jsx"
	"github.com/pugxlabs/pugx/pkg/template"
)

// Translate rewrites the top-level nodes of one template occurrence into a
// single output child. Multiple roots are grouped in a fragment.
func Translate(nodes []*template.Node, ctx Context) (jsx.Child, error) {
	children, err := translateBlock(nodes, ctx)
	if err != nil {
		return nil, err
	}
	return jsx.Group(children), nil
}

// translateBlock visits a child list in document order. Order is preserved
// exactly; text nodes may expand into several children when they embed
// reference tokens.
func translateBlock(nodes []*template.Node, ctx Context) ([]jsx.Child, error) {
	var out []jsx.Child
	for _, n := range nodes {
		if n.Kind == template.KindText {
			pieces, err := textChildren(n.Code, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, pieces...)
			continue
		}
		c, err := translateNode(n, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func translateNode(n *template.Node, ctx Context) (jsx.Child, error) {
	switch n.Kind {
	case template.KindText:
		pieces, err := textChildren(n.Code, ctx)
		if err != nil {
			return nil, err
		}
		return jsx.Group(pieces), nil
	case template.KindCode:
		expr, err := parseValueExpr(n.Code, ctx)
		if err != nil {
			return nil, err
		}
		return &jsx.ExprContainer{Expr: expr}, nil
	case template.KindTag, template.KindExpression:
		return translateElement(n, ctx)
	case template.KindEach:
		return translateEach(n, ctx)
	case template.KindCond:
		return translateCond(n, ctx)
	default:
		panic(fmt.Sprintf("transform: unhandled template node kind %d", n.Kind))
	}
}

// translateElement handles tag and interpolated-tag nodes: attributes first,
// then children under a no-key context, then the interpolation resolver on
// the node's name.
func translateElement(n *template.Node, ctx Context) (jsx.Child, error) {
	attrs, err := translateAttributes(n, ctx)
	if err != nil {
		return nil, err
	}
	children, err := translateBlock(n.Block, ctx.DeriveNoKey())
	if err != nil {
		return nil, err
	}

	resolved, tag, err := resolveTag(n, ctx)
	if err != nil {
		return nil, err
	}

	if resolved != nil {
		if len(n.Attrs) == 0 && len(n.Block) == 0 {
			// bare reference: the expression replaces the node entirely
			return &jsx.ExprContainer{Expr: resolved}, nil
		}
		id, ok := resolved.(*js.Identifier)
		if !ok || !isComponentName(id.Name) {
			return nil, ctx.Raise(ErrInvalidInterpolationUsage,
				"only component references may carry attributes or children")
		}
		return jsx.NewElement(id, ctx.InjectKeyIfNeeded(attrs), children), nil
	}

	return jsx.NewElement(tag, ctx.InjectKeyIfNeeded(attrs), children), nil
}

// resolveTag decides what a tag/expression node's name stands for. It
// returns a resolved interpolation expression, or the literal/dynamic tag
// expression when the name is not a placeholder.
func resolveTag(n *template.Node, ctx Context) (resolved, tag js.Expr, err error) {
	if n.Kind == template.KindTag {
		if !interp.IsRef(n.Name) {
			expr, perr := js.ParseExpr(n.Name)
			if perr != nil {
				return nil, nil, perr
			}
			return nil, expr, nil
		}
		expr, ok := ctx.ResolveInterpolation(n.Name)
		if !ok {
			return nil, nil, ctx.Raise(ErrUnknownInterpolationReference,
				"no expression bound to reference %q", n.Name)
		}
		return expr, nil, nil
	}

	// interpolated tag: the name is an expression source
	expr, perr := js.ParseExpr(n.Name)
	if perr != nil {
		return nil, nil, perr
	}
	if id, ok := expr.(*js.Identifier); ok && interp.IsRef(id.Name) {
		bound, ok := ctx.ResolveInterpolation(id.Name)
		if !ok {
			return nil, nil, ctx.Raise(ErrUnknownInterpolationReference,
				"no expression bound to reference %q", id.Name)
		}
		return bound, nil, nil
	}
	// dynamic tag such as #{ui.Button}
	return nil, expr, nil
}

// translateEach compiles a repetition into a map expression. Elements
// produced directly in the body receive a synthesized key attribute.
func translateEach(n *template.Node, ctx Context) (jsx.Child, error) {
	source, err := parseValueExpr(n.EachSource, ctx)
	if err != nil {
		return nil, err
	}
	index := n.EachIndex
	if index == "" {
		index = "i"
	}
	body, err := translateBlock(n.Block, ctx.DeriveKeyed(&js.Identifier{Name: index}))
	if err != nil {
		return nil, err
	}
	return &jsx.MapExpr{
		Source:     source,
		ValueParam: n.EachValue,
		IndexParam: index,
		Body:       body,
	}, nil
}

// translateCond compiles a conditional into a ternary child. Branches keep
// the enclosing context so elements inside a repeated conditional are still
// keyed.
func translateCond(n *template.Node, ctx Context) (jsx.Child, error) {
	test, err := parseValueExpr(n.CondTest, ctx)
	if err != nil {
		return nil, err
	}
	then, err := translateBlock(n.Block, ctx)
	if err != nil {
		return nil, err
	}
	els, err := translateBlock(n.CondElse, ctx)
	if err != nil {
		return nil, err
	}
	return &jsx.CondExpr{Test: test, Then: then, Else: els}, nil
}

// textChildren splits raw text into literal runs and resolved interpolation
// containers.
func textChildren(text string, ctx Context) ([]jsx.Child, error) {
	var out []jsx.Child
	for _, seg := range interp.SplitText(text) {
		if seg.Ref == "" {
			out = append(out, &jsx.Text{Value: seg.Text})
			continue
		}
		expr, ok := ctx.ResolveInterpolation(seg.Ref)
		if !ok {
			return nil, ctx.Raise(ErrUnknownInterpolationReference,
				"no expression bound to reference %q", seg.Ref)
		}
		out = append(out, &jsx.ExprContainer{Expr: expr})
	}
	return out, nil
}

// isComponentName is the component-likeness heuristic: a bare identifier
// whose first character is uppercase names a component. Known ambiguity,
// kept as-is rather than strengthened.
func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
