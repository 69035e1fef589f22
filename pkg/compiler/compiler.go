// Package compiler ties the pipeline together: interpolation substitution,
// template parsing, tree transformation, and JSX emission. Each call is
// self-contained; nothing persists between occurrences.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pugxlabs/pugx/pkg/codegen"
	"github.com/pugxlabs/pugx/pkg/interp"
	"github.com/pugxlabs/pugx/pkg/template"
	"github.com/pugxlabs/pugx/pkg/transform"
)

// Options controls how a compiled template is emitted.
type Options struct {
	// ComponentName, when set, wraps the JSX in an exported arrow-function
	// component of that name taking a props parameter.
	ComponentName string
}

// Compile translates one template source into JSX text.
func Compile(filename, source string, opts Options) (string, error) {
	substituted, refs, err := interp.Substitute(source)
	if err != nil {
		return "", fmt.Errorf("%s: %w", filename, err)
	}
	nodes, err := template.Parse(filename, substituted)
	if err != nil {
		return "", err
	}
	root, err := transform.Translate(nodes, transform.NewContext(filename, refs))
	if err != nil {
		return "", err
	}
	out := codegen.Print(root)

	if opts.ComponentName == "" {
		return out + "\n", nil
	}
	return wrapComponent(opts.ComponentName, out), nil
}

// CompileFile compiles inPath and writes the result to outPath, deriving the
// component name from the input file name.
func CompileFile(inPath, outPath string) error {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	out, err := Compile(inPath, string(src), Options{
		ComponentName: ComponentName(inPath),
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(out), 0644)
}

// ComponentName derives an exported component name from a file path:
// "card-item.pug" becomes "CardItem".
func ComponentName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	upper := true
	for _, r := range base {
		if r == '-' || r == '_' || r == '.' || r == ' ' {
			upper = true
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Component"
	}
	name := b.String()
	if unicode.IsDigit(rune(name[0])) {
		name = "C" + name
	}
	return name
}

func wrapComponent(name, body string) string {
	var b strings.Builder
	b.WriteString("const " + name + " = (props) => (\n")
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(");\n\nexport default " + name + ";\n")
	return b.String()
}
