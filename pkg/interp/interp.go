// Package interp owns the placeholder token grammar used to smuggle host
// expressions through the template parser.
//
// `${...}` spans cannot survive template parsing, so Substitute replaces each
// one with a reference token before the source is parsed and records the
// parsed expression in a table keyed by token. The transform resolves tokens
// back through that table. Token detection is a pure predicate here so the
// grammar can change without touching the tree walkers.
package interp

import (
	"fmt"
	"regexp"

	"github.com/pugxlabs/pugx/pkg/js"
)

const refPrefix = "__pugx_ref_"

var (
	refPattern = regexp.MustCompile(`^__pugx_ref_(\d+)__$`)
	refScan    = regexp.MustCompile(`__pugx_ref_\d+__`)
)

// Table maps reference tokens to their parsed expressions. One table is
// built per template occurrence and discarded after translation.
type Table map[string]js.Expr

// Ref returns the reference token for index i.
func Ref(i int) string {
	return fmt.Sprintf("%s%d__", refPrefix, i)
}

// IsRef reports whether name matches the reference-token grammar.
func IsRef(name string) bool {
	return refPattern.MatchString(name)
}

// Segment is a run of literal text or a single embedded reference token.
// Exactly one of the two fields is set.
type Segment struct {
	Text string
	Ref  string
}

// SplitText splits text into literal runs and embedded reference tokens, in
// document order. Text without tokens yields a single literal segment.
func SplitText(text string) []Segment {
	locs := refScan.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}
	var segs []Segment
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segs = append(segs, Segment{Text: text[prev:loc[0]]})
		}
		segs = append(segs, Segment{Ref: text[loc[0]:loc[1]]})
		prev = loc[1]
	}
	if prev < len(text) {
		segs = append(segs, Segment{Text: text[prev:]})
	}
	return segs
}

// Substitute replaces every `${...}` span in src with a reference token and
// returns the rewritten source plus the token table. Spans respect nested
// braces and quoted strings, so `${fn({a: "}"})}` is one span.
func Substitute(src string) (string, Table, error) {
	table := Table{}
	var out []byte
	next := 0

	for i := 0; i < len(src); {
		if src[i] == '$' && i+1 < len(src) && src[i+1] == '{' {
			end, err := matchBrace(src, i+2)
			if err != nil {
				return "", nil, err
			}
			inner := src[i+2 : end]
			expr, err := js.ParseExpr(inner)
			if err != nil {
				return "", nil, fmt.Errorf("interpolation %q: %w", inner, err)
			}
			token := Ref(next)
			table[token] = expr
			next++
			out = append(out, token...)
			i = end + 1
			continue
		}
		out = append(out, src[i])
		i++
	}

	return string(out), table, nil
}

// matchBrace scans from start (just past `${`) to the matching `}` and
// returns its index.
func matchBrace(src string, start int) (int, error) {
	depth := 1
	var quote byte
	for i := start; i < len(src); i++ {
		c := src[i]
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated interpolation starting at offset %d", start-2)
}
