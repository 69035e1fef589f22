package template

// Parsed template tree. One Node struct tagged with Kind rather than an
// interface hierarchy; consumers switch exhaustively on Kind.

// Kind discriminates template node variants.
type Kind uint8

const (
	// KindTag is a literal element tag line (`div.box(href="/")`).
	KindTag Kind = iota
	// KindExpression is an interpolated tag (`#{expr}(...)`): the tag name
	// is an expression source rather than a literal name.
	KindExpression
	// KindText is plain text content (`| hello`, inline tag text).
	KindText
	// KindCode is a buffered expression (`= expr`, `p= expr`).
	KindCode
	// KindEach is a repetition construct (`each item, i in items`).
	KindEach
	// KindCond is a conditional construct (`if expr` / `else`).
	KindCond
)

// Attr is one raw attribute occurrence.
//
// Val holds the attribute's value expression source. IsTrue marks a bare
// attribute with no written value (a literal boolean true). MustEscape is
// false only for `!=` values, where the author requested unescaped output.
type Attr struct {
	Name       string
	Val        string
	IsTrue     bool
	MustEscape bool
}

// AttrBlock is a bulk attribute object (`&attributes(obj)`). The parser
// records these structurally; the transform rejects them.
type AttrBlock struct {
	Expr string
}

// Node is one template tree node.
type Node struct {
	Kind       Kind
	Name       string // tag name (KindTag) or tag expression source (KindExpression)
	Attrs      []Attr
	AttrBlocks []AttrBlock
	Block      []*Node // structural children
	Code       string  // text content (KindText) or expression source (KindCode)

	// KindEach
	EachValue  string
	EachIndex  string
	EachSource string

	// KindCond
	CondTest string
	CondElse []*Node

	Line int
}
