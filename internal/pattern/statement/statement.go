// Package statement implements the statement layer of the behavior pattern
// AST: calls, bare literal references, and the two assignment forms (§3,
// §4.2). Statements are immutable value objects built directly atop
// operand.Operand; none of their constructors can fail, since the grammar
// transformer is the only caller and has already validated every operand.
package statement

import (
	"fmt"
	"strings"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
	"github.com/dewolf-research/rikai-frontend/pkg/container"
)

// Statement is the sealed variant set: Call, Reference, LiteralAssignment
// and CallAssignment.
type Statement interface {
	fmt.Stringer

	// Defines returns the variables this statement binds.
	Defines() *container.OrderedSet[operand.Variable]

	// Dependencies returns the variables this statement reads.
	Dependencies() *container.OrderedSet[operand.Variable]

	// Variables returns Defines() ∪ Dependencies().
	Variables() *container.OrderedSet[operand.Variable]

	// Literals returns every literal transitively reachable from this
	// statement's operands.
	Literals() *container.OrderedSet[operand.Literal]

	sealed()
}

// Assignment is the sealed sub-variant covering LiteralAssignment and
// CallAssignment: statements that bind exactly one variable.
type Assignment interface {
	Statement

	// Assignee returns the bound variable.
	Assignee() operand.Variable

	isAssignment()
}

// Call models an API-function invocation by label with positional
// parameters, optionally qualified by a library/module name (e.g. when the
// same symbol is overloaded across libraries).
type Call struct {
	Label      string
	Parameters []operand.Operand
	Library    string
}

// NewCall builds a Call from a label and positional parameters.
func NewCall(label string, parameters ...operand.Operand) Call {
	return Call{Label: label, Parameters: append([]operand.Operand(nil), parameters...)}
}

// WithLibrary returns a copy of c qualified by the given library name.
func (c Call) WithLibrary(library string) Call {
	c.Library = library
	return c
}

func (Call) sealed() {}

func (c Call) String() string {
	parts := make([]string, len(c.Parameters))
	for i, p := range c.Parameters {
		parts[i] = p.String()
	}
	body := fmt.Sprintf("%s(%s)", c.Label, strings.Join(parts, ", "))
	if c.Library == "" {
		return body
	}
	return c.Library + "." + body
}

func (c Call) Defines() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSet[operand.Variable]()
}

func (c Call) Dependencies() *container.OrderedSet[operand.Variable] {
	out := container.NewOrderedSet[operand.Variable]()
	for _, p := range c.Parameters {
		out.AddAll(p.Variables())
	}
	return out
}

func (c Call) Variables() *container.OrderedSet[operand.Variable] {
	return c.Dependencies()
}

func (c Call) Literals() *container.OrderedSet[operand.Literal] {
	out := container.NewOrderedSet[operand.Literal]()
	for _, p := range c.Parameters {
		out.AddAll(p.Literals())
	}
	return out
}

// Reference is a bare literal used as a standalone statement: it asserts
// that the literal occurs somewhere in the analyzed program, without
// binding or depending on anything.
type Reference struct {
	Literal operand.Literal
}

// NewReference builds a Reference over the given literal.
func NewReference(literal operand.Literal) Reference {
	return Reference{Literal: literal}
}

func (Reference) sealed() {}

func (r Reference) String() string { return r.Literal.String() }

func (r Reference) Defines() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSet[operand.Variable]()
}

func (r Reference) Dependencies() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSet[operand.Variable]()
}

func (r Reference) Variables() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSet[operand.Variable]()
}

func (r Reference) Literals() *container.OrderedSet[operand.Literal] {
	return container.NewOrderedSetOf(r.Literal)
}

// LiteralAssignment binds a variable directly to a literal value, e.g. "y = 2".
type LiteralAssignment struct {
	AssigneeVar operand.Variable
	Value       operand.Literal
}

// NewLiteralAssignment builds a LiteralAssignment.
func NewLiteralAssignment(assignee operand.Variable, value operand.Literal) LiteralAssignment {
	return LiteralAssignment{AssigneeVar: assignee, Value: value}
}

func (LiteralAssignment) sealed()      {}
func (LiteralAssignment) isAssignment() {}

func (a LiteralAssignment) Assignee() operand.Variable { return a.AssigneeVar }

func (a LiteralAssignment) String() string {
	return fmt.Sprintf("%s = %s", a.AssigneeVar, a.Value)
}

func (a LiteralAssignment) Defines() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSetOf(a.AssigneeVar)
}

func (a LiteralAssignment) Dependencies() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSet[operand.Variable]()
}

func (a LiteralAssignment) Variables() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSetOf(a.AssigneeVar)
}

func (a LiteralAssignment) Literals() *container.OrderedSet[operand.Literal] {
	return container.NewOrderedSetOf(a.Value)
}

// CallAssignment binds a variable to the result of a call, e.g.
// "x = HttpOpenRequestA(_, _, _, _, _, _, _)".
type CallAssignment struct {
	AssigneeVar operand.Variable
	Value       Call
}

// NewCallAssignment builds a CallAssignment.
func NewCallAssignment(assignee operand.Variable, value Call) CallAssignment {
	return CallAssignment{AssigneeVar: assignee, Value: value}
}

func (CallAssignment) sealed()      {}
func (CallAssignment) isAssignment() {}

func (a CallAssignment) Assignee() operand.Variable { return a.AssigneeVar }

func (a CallAssignment) String() string {
	return fmt.Sprintf("%s = %s", a.AssigneeVar, a.Value)
}

func (a CallAssignment) Defines() *container.OrderedSet[operand.Variable] {
	return container.NewOrderedSetOf(a.AssigneeVar)
}

func (a CallAssignment) Dependencies() *container.OrderedSet[operand.Variable] {
	return a.Value.Dependencies()
}

func (a CallAssignment) Variables() *container.OrderedSet[operand.Variable] {
	out := container.NewOrderedSetOf(a.AssigneeVar)
	out.AddAll(a.Value.Dependencies())
	return out
}

func (a CallAssignment) Literals() *container.OrderedSet[operand.Literal] {
	return a.Value.Literals()
}
