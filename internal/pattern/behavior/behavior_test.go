package behavior

import (
	"testing"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/block"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/statement"
	"github.com/dewolf-research/rikai-frontend/pkg/container"
)

func mustVar(t *testing.T, name string) operand.Variable {
	t.Helper()
	v, err := operand.NewVariable(name)
	if err != nil {
		t.Fatalf("NewVariable(%q): %v", name, err)
	}
	return v
}

func TestBehavior_ZeroDisjunctions_ExpandsToSingleBlock(t *testing.T) {
	base := block.FromStatements(statement.NewCall("foo"))
	b, err := New([]block.Block{base}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	expanded := b.Expand()
	if len(expanded) != 1 {
		t.Fatalf("Expand() len = %d, want 1", len(expanded))
	}
	if got, want := expanded[0].String(), "foo()"; got != want {
		t.Errorf("Expand()[0].String() = %q, want %q", got, want)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

// TestBehavior_DisjunctionExpansion_Scenario5 reproduces §8 scenario 5:
//
//	y = 2
//	switch ("method") { case "lol": { x = 1 } case "test": { x = 3 } }
//	foo("bar")
//
// which must expand to exactly two blocks: "y=2, x=1, foo(\"bar\")" and
// "y=2, x=3, foo(\"bar\")" — the switch's chosen alternative interleaved
// between the two unconditional segments, not appended after them.
func TestBehavior_DisjunctionExpansion_Scenario5(t *testing.T) {
	y := mustVar(t, "y")
	x := mustVar(t, "x")

	before := block.FromStatements(statement.NewLiteralAssignment(y, operand.NewIntegerLiteral(2)))
	after := block.FromStatements(statement.NewCall("foo", operand.NewStringLiteral("bar")))

	lol := block.FromStatements(statement.NewLiteralAssignment(x, operand.NewIntegerLiteral(1)))
	test := block.FromStatements(statement.NewLiteralAssignment(x, operand.NewIntegerLiteral(3)))

	disjunction := NewDisjunction(
		operand.NewStringLiteral("method"),
		container.Entry[string, block.Block]{Key: "lol", Value: lol},
		container.Entry[string, block.Block]{Key: "test", Value: test},
	)

	b, err := New([]block.Block{before, after}, []Disjunction{disjunction})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got, want := b.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	expanded := b.Expand()
	if len(expanded) != 2 {
		t.Fatalf("Expand() len = %d, want 2", len(expanded))
	}

	want := []string{
		"y = 0x2\nx = 0x1\nfoo(\"bar\")",
		"y = 0x2\nx = 0x3\nfoo(\"bar\")",
	}
	for i, w := range want {
		if got := expanded[i].String(); got != w {
			t.Errorf("Expand()[%d].String() = %q, want %q", i, got, w)
		}
	}
}

func TestBehavior_EmptyDisjunction_ExpandsToNothing(t *testing.T) {
	base := block.FromStatements(statement.NewCall("foo"))
	empty := NewDisjunction(operand.NewStringLiteral("method"))
	b, err := New([]block.Block{base, base}, []Disjunction{empty})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := b.Expand(); got != nil {
		t.Errorf("Expand() = %v, want nil for an empty disjunction", got)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestBehavior_TwoDisjunctions_CardinalityIsProduct(t *testing.T) {
	base := block.FromStatements(statement.NewCall("foo"))
	d1 := NewDisjunction(operand.NewStringLiteral("a"),
		container.Entry[string, block.Block]{Key: "1", Value: base},
		container.Entry[string, block.Block]{Key: "2", Value: base},
		container.Entry[string, block.Block]{Key: "3", Value: base},
	)
	d2 := NewDisjunction(operand.NewStringLiteral("b"),
		container.Entry[string, block.Block]{Key: "x", Value: base},
		container.Entry[string, block.Block]{Key: "y", Value: base},
	)

	b, err := New([]block.Block{base, base, base}, []Disjunction{d1, d2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := b.Len(), 6; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if got := len(b.Expand()); got != 6 {
		t.Errorf("Expand() len = %d, want 6", got)
	}
}

func TestNew_RejectsMismatchedSegmentCount(t *testing.T) {
	base := block.FromStatements(statement.NewCall("foo"))
	d := NewDisjunction(operand.NewStringLiteral("a"),
		container.Entry[string, block.Block]{Key: "1", Value: base})
	if _, err := New([]block.Block{base}, []Disjunction{d}); err == nil {
		t.Error("expected error: 1 segment with 1 disjunction needs 2 segments")
	}
}
