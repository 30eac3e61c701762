package statement

import (
	"testing"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
)

func mustVar(t *testing.T, name string) operand.Variable {
	t.Helper()
	v, err := operand.NewVariable(name)
	if err != nil {
		t.Fatalf("NewVariable(%q): %v", name, err)
	}
	return v
}

func TestCall_RendersLabelAndParameters(t *testing.T) {
	x0 := mustVar(t, "x0")
	c := NewCall("HttpOpenRequestA", operand.Unbound, x0, operand.NewStringLiteral("GET"))
	if got, want := c.String(), `HttpOpenRequestA(_, x0, "GET")`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestCall_RendersWithLibraryPrefix(t *testing.T) {
	c := NewCall("open").WithLibrary("wininet")
	if got, want := c.String(), "wininet.open()"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestCall_DefinesNothing_DependsOnParameterVariables(t *testing.T) {
	x0 := mustVar(t, "x0")
	x1 := mustVar(t, "x1")
	c := NewCall("foo", x0, operand.NewIntegerLiteral(1), x1)

	if c.Defines().Len() != 0 {
		t.Error("Call must never define a variable")
	}
	deps := c.Dependencies()
	if deps.Len() != 2 || !deps.Contains(x0) || !deps.Contains(x1) {
		t.Errorf("Dependencies() = %v, want [x0 x1]", deps.Values())
	}
}

func TestReference_DefinesAndDependsOnNothing(t *testing.T) {
	r := NewReference(operand.NewStringLiteral("bar"))
	if r.Defines().Len() != 0 || r.Dependencies().Len() != 0 {
		t.Error("Reference must never define or depend on a variable")
	}
	if r.Literals().Len() != 1 || !r.Literals().Contains(operand.Literal(operand.NewStringLiteral("bar"))) {
		t.Error("Reference.Literals() must contain its literal")
	}
	if got, want := r.String(), `"bar"`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestLiteralAssignment_DefinesAssigneeOnly(t *testing.T) {
	y := mustVar(t, "y")
	a := NewLiteralAssignment(y, operand.NewIntegerLiteral(2))

	if got, want := a.String(), "y = 0x2"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if a.Defines().Len() != 1 || !a.Defines().Contains(y) {
		t.Error("LiteralAssignment must define its assignee")
	}
	if a.Dependencies().Len() != 0 {
		t.Error("LiteralAssignment must have no dependencies")
	}
	if a.Assignee() != y {
		t.Error("Assignee() must return the bound variable")
	}
}

func TestCallAssignment_DefinesAssignee_DependsOnCallParameters(t *testing.T) {
	x := mustVar(t, "x")
	x0 := mustVar(t, "x0")
	call := NewCall("HttpOpenRequestA", x0, operand.Unbound)
	a := NewCallAssignment(x, call)

	if got, want := a.String(), `x = HttpOpenRequestA(x0, _)`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if a.Defines().Len() != 1 || !a.Defines().Contains(x) {
		t.Error("CallAssignment must define its assignee")
	}
	deps := a.Dependencies()
	if deps.Len() != 1 || !deps.Contains(x0) {
		t.Errorf("Dependencies() = %v, want [x0]", deps.Values())
	}
	vars := a.Variables()
	if vars.Len() != 2 || !vars.Contains(x) || !vars.Contains(x0) {
		t.Errorf("Variables() = %v, want [x x0]", vars.Values())
	}
}

func TestAssignment_Interface_CoversBothVariants(t *testing.T) {
	y := mustVar(t, "y")
	var _ Assignment = NewLiteralAssignment(y, operand.NewIntegerLiteral(1))
	var _ Assignment = NewCallAssignment(y, NewCall("foo"))
}
