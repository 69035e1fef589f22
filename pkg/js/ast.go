package js

// Expression nodes for the host language embedded in templates.
//
// The compiler never needs a full JavaScript parser: attribute values and
// interpolations are classified just far enough to apply the escape rule and
// the component-likeness check, and anything beyond that round-trips through
// Raw untouched.

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	expr()
}

// Identifier is a bare name such as `props` or `Button`.
type Identifier struct {
	Name string
}

// Member is a dotted property access such as `props.items` or `ui.Button`.
type Member struct {
	Object   Expr
	Property string
}

// StringLit is a string literal. Value holds the unquoted text.
type StringLit struct {
	Value string
}

// NumberLit keeps the literal's source text so formatting survives round-trips.
type NumberLit struct {
	Value string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
}

// NullLit is the literal `null`.
type NullLit struct{}

// Array is an array literal built by the compiler (class merging).
type Array struct {
	Elements []Expr
}

// Call is a function or method invocation built by the compiler.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Arrow is an arrow function with simple named parameters.
type Arrow struct {
	Params []string
	Body   Expr
}

// Raw is host-language source the mini parser did not analyze further.
// It prints verbatim.
type Raw struct {
	Source string
}

func (*Identifier) expr() {}
func (*Member) expr()     {}
func (*StringLit) expr()  {}
func (*NumberLit) expr()  {}
func (*BoolLit) expr()    {}
func (*NullLit) expr()    {}
func (*Array) expr()      {}
func (*Call) expr()       {}
func (*Arrow) expr()      {}
func (*Raw) expr()        {}

// IsStringLit reports whether e is a plain string literal.
func IsStringLit(e Expr) bool {
	_, ok := e.(*StringLit)
	return ok
}
