package interp

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pugxlabs/pugx/pkg/js"
)

func TestIsRef(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{Ref(0), true},
		{Ref(42), true},
		{"__pugx_ref___", false},
		{"__pugx_ref_1_", false},
		{"div", false},
		{"Button", false},
		{"x" + Ref(0), false},
	}
	for _, tt := range tests {
		if got := IsRef(tt.name); got != tt.want {
			t.Errorf("IsRef(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSubstitute(t *testing.T) {
	out, table, err := Substitute("h1 Hello ${user.name}!\ndiv(title=${tip})")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}

	want := "h1 Hello " + Ref(0) + "!\ndiv(title=" + Ref(1) + ")"
	if out != want {
		t.Errorf("substituted source = %q, want %q", out, want)
	}

	wantTable := Table{
		Ref(0): &js.Member{Object: &js.Identifier{Name: "user"}, Property: "name"},
		Ref(1): &js.Identifier{Name: "tip"},
	}
	if diff := cmp.Diff(wantTable, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestSubstituteNestedBraces(t *testing.T) {
	out, table, err := Substitute("p ${fn({a: 1})}")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if out != "p "+Ref(0) {
		t.Errorf("substituted source = %q", out)
	}
	want := Table{Ref(0): &js.Raw{Source: "fn({a: 1})"}}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestSubstituteBraceInString(t *testing.T) {
	_, table, err := Substitute(`p ${say("}")}`)
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	want := Table{Ref(0): &js.Raw{Source: `say("}")`}}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestSubstituteUnterminated(t *testing.T) {
	if _, _, err := Substitute("p ${oops"); err == nil {
		t.Error("expected error for unterminated interpolation")
	}
}

func TestSubstituteNoInterpolations(t *testing.T) {
	out, table, err := Substitute("div hello")
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if out != "div hello" || len(table) != 0 {
		t.Errorf("Substitute() = %q, table %v", out, table)
	}
}

func TestSplitText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Segment
	}{
		{
			name: "no tokens",
			text: "plain",
			want: []Segment{{Text: "plain"}},
		},
		{
			name: "token in the middle",
			text: "a " + Ref(0) + " b",
			want: []Segment{{Text: "a "}, {Ref: Ref(0)}, {Text: " b"}},
		},
		{
			name: "token only",
			text: Ref(3),
			want: []Segment{{Ref: Ref(3)}},
		},
		{
			name: "adjacent tokens",
			text: Ref(0) + Ref(1),
			want: []Segment{{Ref: Ref(0)}, {Ref: Ref(1)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitText(tt.text)); diff != "" {
				t.Errorf("SplitText(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}
