package constraint

import (
	"strings"
	"testing"

	"github.com/dewolf-research/rikai-frontend/internal/grammar"
)

func mustParse(t *testing.T, text string) []string {
	t.Helper()
	b, err := grammar.ParsePattern(text, nil)
	if err != nil {
		t.Fatalf("ParsePattern(%q): %v", text, err)
	}
	var queries []string
	for _, blk := range b.Expand() {
		queries = append(queries, Generate(blk))
	}
	return queries
}

// TestGenerate_Scenario1_EmptyCall reproduces §8 scenario 1.
func TestGenerate_Scenario1_EmptyCall(t *testing.T) {
	queries := mustParse(t, `foo()`)
	want := "match\n  $c0 isa Call, has Label \"foo\", has Line $lc0;\nget $lc0;"
	if got := queries[0]; got != want {
		t.Errorf("Generate() =\n%s\nwant\n%s", got, want)
	}
}

// TestGenerate_Scenario2_StringLiteralParameter reproduces §8 scenario 2.
func TestGenerate_Scenario2_StringLiteralParameter(t *testing.T) {
	queries := mustParse(t, `foo("bar")`)
	got := queries[0]
	if n := strings.Count(got, `$l0 isa StringLiteral, has StringValue "bar";`); n != 1 {
		t.Errorf("expected exactly one string literal constraint, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, `($l0, $c0) isa Parameter, has Index 1;`) {
		t.Errorf("missing parameter edge:\n%s", got)
	}
}

// TestGenerate_Scenario3_IndexedParametersSkipWildcards reproduces §8 scenario 3.
func TestGenerate_Scenario3_IndexedParametersSkipWildcards(t *testing.T) {
	got := mustParse(t, `foo(2:"test", 4:x0)`)[0]
	if strings.Contains(got, "Index 1;") || strings.Contains(got, "Index 3;") {
		t.Errorf("wildcard indices must not emit parameter edges:\n%s", got)
	}
	if !strings.Contains(got, "Index 2;") || !strings.Contains(got, "Index 4;") {
		t.Errorf("expected parameter edges for indices 2 and 4:\n%s", got)
	}
	if !strings.Contains(got, `$x0 isa Variable;`) {
		t.Errorf("expected a Variable declaration for x0:\n%s", got)
	}
}

// TestGenerate_Scenario4_DefinitionAndUse reproduces §8 scenario 4.
func TestGenerate_Scenario4_DefinitionAndUse(t *testing.T) {
	got := mustParse(t, "x = HttpOpenRequestA(_, _, _, _, _, _, _)\nInternetCloseHandle(x)")[0]
	if !strings.Contains(got, `$c0 isa Call, has Label "HttpOpenRequestA", has Line $lc0;`) {
		t.Errorf("missing HttpOpenRequestA call constraint:\n%s", got)
	}
	if !strings.Contains(got, `($x, $c0) isa Definition;`) {
		t.Errorf("missing Definition edge between x and the assigning call:\n%s", got)
	}
	if !strings.Contains(got, `($x, $c1) isa Parameter, has Index 1;`) {
		t.Errorf("expected InternetCloseHandle's index-1 parameter edge to reference $x:\n%s", got)
	}
}

func TestGenerate_VariableDedup_SameNameSharesID(t *testing.T) {
	got := mustParse(t, "foo(x0)\nbar(x0)")[0]
	if strings.Count(got, "$x0 isa Variable;") != 1 {
		t.Errorf("expected exactly one Variable declaration for x0, got:\n%s", got)
	}
}

func TestGenerate_NoWildcardsConstrained(t *testing.T) {
	got := mustParse(t, `foo(_)`)[0]
	if strings.Contains(got, "Parameter") {
		t.Errorf("an unbound parameter must emit no Parameter edge:\n%s", got)
	}
}

func TestGenerate_GetList_OneLineVariablePerCall(t *testing.T) {
	got := mustParse(t, "foo()\nbar()")[0]
	if !strings.HasSuffix(got, "get $lc0, $lc1;") {
		t.Errorf("unexpected get clause:\n%s", got)
	}
}

func TestGenerate_IsDeterministicAcrossInvocations(t *testing.T) {
	text := "x = HttpOpenRequestA(_, _, _)\nInternetCloseHandle(x)"
	b, err := grammar.ParsePattern(text, nil)
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	blk := b.Expand()[0]
	if got, want := Generate(blk), Generate(blk); got != want {
		t.Errorf("Generate() is not deterministic across invocations:\nfirst:  %s\nsecond: %s", want, got)
	}
}

func TestGenerate_StructureEmitsConditionalEdges(t *testing.T) {
	got := mustParse(t, `if ("a") { foo() }`)[0]
	if !strings.Contains(got, `($l0, $c0) isa Conditional;`) {
		t.Errorf("missing Conditional edge between condition literal and body call:\n%s", got)
	}
	if n := strings.Count(got, `$l0 isa StringLiteral, has StringValue "a";`); n != 1 {
		t.Errorf("expected exactly one declarative constraint for the condition literal, got %d:\n%s", n, got)
	}
}

// TestGenerate_LiteralEntityEmittedExactlyOnce guards against the
// declarative-constraint pre-pass and a statement's own emission both
// writing the same literal's entity line (§4.6: emitted exactly once).
func TestGenerate_LiteralEntityEmittedExactlyOnce(t *testing.T) {
	got := mustParse(t, "x = \"bar\"\nfoo(\"bar\")")[0]
	if n := strings.Count(got, `isa StringLiteral, has StringValue "bar";`); n != 1 {
		t.Errorf("expected exactly one declarative constraint for the deduped literal, got %d:\n%s", n, got)
	}
}
