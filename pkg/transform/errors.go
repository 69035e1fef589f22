package transform

import "fmt"

// Code identifies a diagnostic. Codes are stable: downstream tooling matches
// on them, messages are for humans.
type Code string

const (
	// ErrUnescapedAttributeValue: an attribute not marked escape-safe whose
	// value is not a plain string literal, or whose raw text contains
	// markup-sensitive characters.
	ErrUnescapedAttributeValue Code = "UnescapedAttributeValue"
	// ErrSpreadAttributeWithValue: a spread-marked attribute name carries an
	// explicit value.
	ErrSpreadAttributeWithValue Code = "SpreadAttributeWithValue"
	// ErrAttributeBlockUnsupported: the node declares bulk attribute objects.
	ErrAttributeBlockUnsupported Code = "AttributeBlockUnsupported"
	// ErrInvalidInterpolationUsage: a non-component placeholder reference is
	// given attributes or children.
	ErrInvalidInterpolationUsage Code = "InvalidInterpolationUsage"
	// ErrUnknownInterpolationReference: a name matches the reference-token
	// grammar but has no binding in the occurrence's table.
	ErrUnknownInterpolationReference Code = "UnknownInterpolationReference"
)

// Diagnostic is a hard translation error. Any diagnostic aborts the current
// template occurrence; no partial tree is returned.
type Diagnostic struct {
	Code Code
	Msg  string
	File string
}

func (d *Diagnostic) Error() string {
	if d.File != "" {
		return fmt.Sprintf("%s: %s: %s", d.File, d.Code, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Msg)
}

// DiagnosticCode extracts the code from an error produced by this package,
// or "" when err is not a Diagnostic.
func DiagnosticCode(err error) Code {
	if d, ok := err.(*Diagnostic); ok {
		return d.Code
	}
	return ""
}
