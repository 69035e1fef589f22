package js

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Expr
	}{
		{"double quoted string", `"hello"`, &StringLit{Value: "hello"}},
		{"single quoted string", `'a b'`, &StringLit{Value: "a b"}},
		{"escaped quote", `"say \"hi\""`, &StringLit{Value: `say "hi"`}},
		{"number", "42", &NumberLit{Value: "42"}},
		{"negative float", "-3.14", &NumberLit{Value: "-3.14"}},
		{"true", "true", &BoolLit{Value: true}},
		{"false", "false", &BoolLit{Value: false}},
		{"null", "null", &NullLit{}},
		{"identifier", "props", &Identifier{Name: "props"}},
		{"member chain", "props.user.name", &Member{
			Object:   &Member{Object: &Identifier{Name: "props"}, Property: "user"},
			Property: "name",
		}},
		{"raw fallback", "a + b", &Raw{Source: "a + b"}},
		{"raw call", "fn(1)", &Raw{Source: "fn(1)"}},
		{"concatenation is not a literal", `"a" + "b"`, &Raw{Source: `"a" + "b"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpr(tt.src)
			if err != nil {
				t.Fatalf("ParseExpr(%q) error = %v", tt.src, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseExpr(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParseExprEmpty(t *testing.T) {
	if _, err := ParseExpr("   "); err == nil {
		t.Error("expected error for empty expression")
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"identifier", &Identifier{Name: "x"}, "x"},
		{"member", &Member{Object: &Identifier{Name: "a"}, Property: "b"}, "a.b"},
		{"string", &StringLit{Value: `say "hi"`}, `"say \"hi\""`},
		{"bool", &BoolLit{Value: true}, "true"},
		{"null", &NullLit{}, "null"},
		{
			"array join",
			&Call{
				Callee: &Member{
					Object: &Array{Elements: []Expr{
						&StringLit{Value: "a"},
						&Identifier{Name: "b"},
					}},
					Property: "join",
				},
				Args: []Expr{&StringLit{Value: " "}},
			},
			`["a", b].join(" ")`,
		},
		{
			"arrow",
			&Arrow{Params: []string{"x", "i"}, Body: &Identifier{Name: "x"}},
			"(x, i) => x",
		},
		{"raw", &Raw{Source: "a ? b : c"}, "a ? b : c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.expr); got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePrintRoundTrip(t *testing.T) {
	for _, src := range []string{"props.items", `"quoted"`, "42", "true"} {
		e, err := ParseExpr(src)
		if err != nil {
			t.Fatalf("ParseExpr(%q) error = %v", src, err)
		}
		if got := Print(e); got != src {
			t.Errorf("round trip of %q produced %q", src, got)
		}
	}
}
