package template

import (
	"fmt"
	"strings"
	"unicode"
)

// Parser is a line-oriented parser for the indentation-based template syntax.
//
// Supported per line: element tags with `.class` / `#id` shorthand and a
// parenthesized attribute list, interpolated tags `#{expr}`, piped text `|`,
// buffered code `=` / `tag= expr`, `each v, i in expr`, `if` / `else if` /
// `else`, `&attributes(obj)` blocks, and `//` comments (dropped together with
// their indented bodies). Dot-blocks (`script.`) and mixins are not part of
// the dialect.
type Parser struct {
	filename string
	lines    []sourceLine
	pos      int
}

type sourceLine struct {
	indent int
	text   string
	num    int
}

// NewParser creates a parser over the given source.
func NewParser(filename, src string) *Parser {
	var lines []sourceLine
	for i, raw := range strings.Split(src, "\n") {
		body := strings.TrimLeft(raw, " \t")
		if strings.TrimSpace(body) == "" {
			continue
		}
		lines = append(lines, sourceLine{
			indent: len(raw) - len(body),
			text:   strings.TrimRight(body, "\r"),
			num:    i + 1,
		})
	}
	return &Parser{filename: filename, lines: lines}
}

// Parse parses the whole template and returns its top-level nodes.
func Parse(filename, src string) ([]*Node, error) {
	p := NewParser(filename, src)
	if len(p.lines) == 0 {
		return nil, nil
	}
	nodes, err := p.parseSiblings(p.lines[0].indent)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.lines) {
		return nil, p.errorAt(p.lines[p.pos], "unexpected indentation")
	}
	return nodes, nil
}

// parseSiblings parses consecutive nodes at exactly the given indent.
func (p *Parser) parseSiblings(indent int) ([]*Node, error) {
	var nodes []*Node
	for p.pos < len(p.lines) && p.lines[p.pos].indent >= indent {
		if p.lines[p.pos].indent > indent {
			return nil, p.errorAt(p.lines[p.pos], "unexpected indentation")
		}
		n, err := p.parseNode(indent)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// parseBlock parses the indented children of the node at the given indent.
func (p *Parser) parseBlock(indent int) ([]*Node, error) {
	if p.pos >= len(p.lines) || p.lines[p.pos].indent <= indent {
		return nil, nil
	}
	return p.parseSiblings(p.lines[p.pos].indent)
}

// skipBlock drops all lines indented deeper than indent.
func (p *Parser) skipBlock(indent int) {
	for p.pos < len(p.lines) && p.lines[p.pos].indent > indent {
		p.pos++
	}
}

func (p *Parser) parseNode(indent int) (*Node, error) {
	ln := p.lines[p.pos]
	text := ln.text
	p.pos++

	switch {
	case strings.HasPrefix(text, "//"):
		p.skipBlock(indent)
		return nil, nil
	case strings.HasPrefix(text, "|"):
		content := strings.TrimPrefix(strings.TrimPrefix(text, "|"), " ")
		return &Node{Kind: KindText, Code: content, Line: ln.num}, nil
	case strings.HasPrefix(text, "="):
		code := strings.TrimSpace(text[1:])
		if code == "" {
			return nil, p.errorAt(ln, "expected expression after '='")
		}
		return &Node{Kind: KindCode, Code: code, Line: ln.num}, nil
	}

	if rest, ok := keyword(text, "each"); ok {
		return p.parseEach(rest, indent, ln)
	}
	if rest, ok := keyword(text, "if"); ok {
		return p.parseCond(rest, indent, ln)
	}
	if _, ok := keyword(text, "else"); ok {
		return nil, p.errorAt(ln, "else without matching if")
	}

	return p.parseTagLine(text, indent, ln)
}

func (p *Parser) parseEach(rest string, indent int, ln sourceLine) (*Node, error) {
	sep := strings.Index(rest, " in ")
	if sep < 0 {
		return nil, p.errorAt(ln, "expected 'in' in each")
	}
	source := strings.TrimSpace(rest[sep+4:])
	if source == "" {
		return nil, p.errorAt(ln, "expected iterable expression in each")
	}

	value := strings.TrimSpace(rest[:sep])
	index := ""
	if comma := strings.Index(value, ","); comma >= 0 {
		index = strings.TrimSpace(value[comma+1:])
		value = strings.TrimSpace(value[:comma])
	}
	if value == "" {
		return nil, p.errorAt(ln, "expected value name in each")
	}

	block, err := p.parseBlock(indent)
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:       KindEach,
		EachValue:  value,
		EachIndex:  index,
		EachSource: source,
		Block:      block,
		Line:       ln.num,
	}, nil
}

func (p *Parser) parseCond(rest string, indent int, ln sourceLine) (*Node, error) {
	test := strings.TrimSpace(rest)
	if test == "" {
		return nil, p.errorAt(ln, "expected condition in if")
	}
	block, err := p.parseBlock(indent)
	if err != nil {
		return nil, err
	}
	node := &Node{Kind: KindCond, CondTest: test, Block: block, Line: ln.num}

	if p.pos < len(p.lines) && p.lines[p.pos].indent == indent {
		if elseRest, ok := keyword(p.lines[p.pos].text, "else"); ok {
			elseLn := p.lines[p.pos]
			p.pos++
			if nested, ok := keyword(elseRest, "if"); ok {
				child, err := p.parseCond(nested, indent, elseLn)
				if err != nil {
					return nil, err
				}
				node.CondElse = []*Node{child}
			} else if elseRest == "" {
				node.CondElse, err = p.parseBlock(indent)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, p.errorAt(elseLn, "unexpected text after else")
			}
		}
	}
	return node, nil
}

func (p *Parser) parseTagLine(text string, indent int, ln sourceLine) (*Node, error) {
	node := &Node{Kind: KindTag, Line: ln.num}
	i := 0

	if strings.HasPrefix(text, "#{") {
		end, err := matchDelim(text, 2, '{', '}')
		if err != nil {
			return nil, p.errorAt(ln, "unterminated tag interpolation")
		}
		expr := strings.TrimSpace(text[2:end])
		if expr == "" {
			return nil, p.errorAt(ln, "empty tag interpolation")
		}
		node.Kind = KindExpression
		node.Name = expr
		i = end + 1
	} else {
		start := i
		for i < len(text) && isTagNameChar(text[i]) {
			i++
		}
		node.Name = text[start:i]
	}

	for i < len(text) && (text[i] == '.' || text[i] == '#') {
		marker := text[i]
		i++
		start := i
		for i < len(text) && isShorthandChar(text[i]) {
			i++
		}
		word := text[start:i]
		if word == "" {
			return nil, p.errorAt(ln, fmt.Sprintf("expected name after %q", string(marker)))
		}
		name := "class"
		if marker == '#' {
			name = "id"
		}
		node.Attrs = append(node.Attrs, Attr{Name: name, Val: `"` + word + `"`, MustEscape: true})
	}

	if node.Kind == KindTag && node.Name == "" && len(node.Attrs) == 0 {
		return nil, p.errorAt(ln, "expected tag name")
	}
	if node.Kind == KindTag && node.Name == "" {
		node.Name = "div"
	}

	if i < len(text) && text[i] == '(' {
		end, err := matchDelim(text, i+1, '(', ')')
		if err != nil {
			return nil, p.errorAt(ln, "unterminated attribute list")
		}
		attrs, err := p.parseAttrList(text[i+1:end], ln)
		if err != nil {
			return nil, err
		}
		node.Attrs = append(node.Attrs, attrs...)
		i = end + 1
	}

	for strings.HasPrefix(text[i:], "&attributes(") {
		open := i + len("&attributes(")
		end, err := matchDelim(text, open, '(', ')')
		if err != nil {
			return nil, p.errorAt(ln, "unterminated &attributes")
		}
		node.AttrBlocks = append(node.AttrBlocks, AttrBlock{Expr: strings.TrimSpace(text[open:end])})
		i = end + 1
	}

	rest := text[i:]
	switch {
	case strings.HasPrefix(rest, "!="), strings.HasPrefix(rest, "="):
		code := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(rest, "!"), "="))
		if code == "" {
			return nil, p.errorAt(ln, "expected expression after '='")
		}
		node.Block = append(node.Block, &Node{Kind: KindCode, Code: code, Line: ln.num})
	case strings.HasPrefix(rest, " "):
		if t := rest[1:]; t != "" {
			node.Block = append(node.Block, &Node{Kind: KindText, Code: t, Line: ln.num})
		}
	case rest == "":
	default:
		return nil, p.errorAt(ln, fmt.Sprintf("unexpected %q after tag", rest))
	}

	kids, err := p.parseBlock(indent)
	if err != nil {
		return nil, err
	}
	node.Block = append(node.Block, kids...)
	return node, nil
}

// parseAttrList splits the inside of a parenthesized attribute list.
// Attributes are separated by commas or whitespace; values end at the first
// separator outside quotes and brackets.
func (p *Parser) parseAttrList(s string, ln sourceLine) ([]Attr, error) {
	var attrs []Attr
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == ',') {
			i++
		}
		if i >= len(s) {
			break
		}

		start := i
		if strings.HasPrefix(s[i:], "...") {
			i += 3
		}
		for i < len(s) && isAttrNameChar(s[i]) {
			i++
		}
		name := s[start:i]
		if name == "" {
			return nil, p.errorAt(ln, "invalid attribute list")
		}

		mustEscape := true
		switch {
		case strings.HasPrefix(s[i:], "!="):
			mustEscape = false
			i += 2
		case i < len(s) && s[i] == '=':
			i++
		default:
			attrs = append(attrs, Attr{Name: name, IsTrue: true, MustEscape: true})
			continue
		}

		val, next, err := scanAttrValue(s, i)
		if err != nil {
			return nil, p.errorAt(ln, err.Error())
		}
		attrs = append(attrs, Attr{Name: name, Val: val, MustEscape: mustEscape})
		i = next
	}
	return attrs, nil
}

// scanAttrValue reads an attribute value expression starting at i, stopping
// at the first top-level comma or whitespace.
func scanAttrValue(s string, i int) (string, int, error) {
	start := i
	depth := 0
	var quote byte
	for i < len(s) {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			i++
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',', ' ', '\t':
			if depth == 0 {
				goto done
			}
		}
		i++
	}
done:
	if quote != 0 {
		return "", 0, fmt.Errorf("unterminated string in attribute value")
	}
	val := s[start:i]
	if val == "" {
		return "", 0, fmt.Errorf("expected attribute value")
	}
	return val, i, nil
}

// matchDelim scans from start (just past the opener) to the matching closer,
// honoring nesting and quoted strings, and returns the closer's index.
func matchDelim(s string, start int, open, close byte) (int, error) {
	depth := 1
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated %q", string(open))
}

// keyword matches a leading keyword followed by end-of-line or whitespace and
// returns the trimmed remainder.
func keyword(text, kw string) (string, bool) {
	if !strings.HasPrefix(text, kw) {
		return "", false
	}
	rest := text[len(kw):]
	if rest == "" {
		return "", true
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func isTagNameChar(c byte) bool {
	return isShorthandChar(c) || c == '$'
}

func isShorthandChar(c byte) bool {
	r := rune(c)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || c == '-' || c == '_'
}

func isAttrNameChar(c byte) bool {
	return isShorthandChar(c) || c == ':' || c == '@' || c == '$'
}

func (p *Parser) errorAt(ln sourceLine, msg string) error {
	return fmt.Errorf("%s:%d: %s", p.filename, ln.num, msg)
}
