package transform

import (
	"strings"

	"github.com/pugxlabs/pugx/pkg/interp"
	"github.com/pugxlabs/pugx/pkg/js"
	"github.com/pugxlabs/pugx/pkg/jsx"
	"github.com/pugxlabs/pugx/pkg/template"
)

// spreadMarker introduces a spread attribute: the remainder of the name is
// the object expression.
const spreadMarker = "..."

// attributeRenames maps template attribute names onto the framework's
// reserved-word-safe property names. Extend here for further renames; the
// rest of the translator is table-driven.
var attributeRenames = map[string]string{
	"for":       "htmlFor",
	"maxlength": "maxLength",
	"class":     "className",
}

// translateAttributes applies the per-attribute rules: spread conversion,
// canonical renames, the escape rule, and className merging. The relative
// order of non-class attributes (spreads included) is preserved; the merged
// className, when present, is emitted last.
func translateAttributes(n *template.Node, ctx Context) ([]jsx.Attribute, error) {
	if len(n.AttrBlocks) > 0 {
		return nil, ctx.Raise(ErrAttributeBlockUnsupported, "&attributes blocks are not supported")
	}

	var attrs []jsx.Attribute
	var classes []js.Expr

	for _, a := range n.Attrs {
		if strings.HasPrefix(a.Name, spreadMarker) {
			if !a.IsTrue {
				return nil, ctx.Raise(ErrSpreadAttributeWithValue,
					"spread attribute %q must not have a value", a.Name)
			}
			expr, err := parseValueExpr(a.Name[len(spreadMarker):], ctx)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, &jsx.SpreadAttr{Expr: expr})
			continue
		}

		name := a.Name
		if renamed, ok := attributeRenames[name]; ok {
			name = renamed
		}

		if a.IsTrue {
			if name == "className" {
				// a bare class attribute contributes no class source
				continue
			}
			attrs = append(attrs, &jsx.Attr{Name: name})
			continue
		}

		expr, err := parseValueExpr(a.Val, ctx)
		if err != nil {
			return nil, err
		}
		if !a.MustEscape {
			if !js.IsStringLit(expr) || strings.ContainsAny(a.Val, "<>&") {
				return nil, ctx.Raise(ErrUnescapedAttributeValue,
					"unescaped attributes are not supported (attribute %q)", a.Name)
			}
		}

		if name == "className" {
			classes = append(classes, expr)
			continue
		}
		attrs = append(attrs, &jsx.Attr{Name: name, Value: attrValue(expr)})
	}

	if len(classes) > 0 {
		attrs = append(attrs, &jsx.Attr{Name: "className", Value: mergeClasses(classes)})
	}
	return attrs, nil
}

// mergeClasses folds all class sources of one element into a single value:
// a space-joined string literal when every source is a literal, otherwise an
// array join evaluated at render time. Source order is preserved.
func mergeClasses(classes []js.Expr) jsx.AttrValue {
	literals := make([]string, 0, len(classes))
	for _, c := range classes {
		lit, ok := c.(*js.StringLit)
		if !ok {
			return &jsx.ExprContainer{Expr: &js.Call{
				Callee: &js.Member{Object: &js.Array{Elements: classes}, Property: "join"},
				Args:   []js.Expr{&js.StringLit{Value: " "}},
			}}
		}
		literals = append(literals, lit.Value)
	}
	return &jsx.StringValue{Value: strings.Join(literals, " ")}
}

// attrValue picks the attribute value form for a parsed expression.
func attrValue(expr js.Expr) jsx.AttrValue {
	if lit, ok := expr.(*js.StringLit); ok {
		return &jsx.StringValue{Value: lit.Value}
	}
	return &jsx.ExprContainer{Expr: expr}
}

// parseValueExpr parses an expression source and resolves it through the
// interpolation table when it is a bare reference token.
func parseValueExpr(src string, ctx Context) (js.Expr, error) {
	expr, err := js.ParseExpr(src)
	if err != nil {
		return nil, err
	}
	if id, ok := expr.(*js.Identifier); ok && interp.IsRef(id.Name) {
		resolved, ok := ctx.ResolveInterpolation(id.Name)
		if !ok {
			return nil, ctx.Raise(ErrUnknownInterpolationReference,
				"no expression bound to reference %q", id.Name)
		}
		return resolved, nil
	}
	return expr, nil
}
