package block

import (
	"fmt"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/statement"
	"github.com/dewolf-research/rikai-frontend/pkg/container"
)

// Kind distinguishes a Structure's two renderings.
type Kind int

const (
	// KindBranch renders as "if (condition) { body }".
	KindBranch Kind = iota
	// KindLoop renders as "while (condition) { body }".
	KindLoop
)

// Structure is a Block guarded by a condition: a Branch or a Loop. Its body
// is a plain sequence of statements per the grammar (`statement+`); the
// grammar does not allow a nested structure inside a structure's body.
//
// Condition holds whatever operand the condition test resolves to. A
// multi-operand "a | b | …" test is an operand.Condition; a single-operand
// test is represented directly by that operand, never wrapped (§4.5).
type Structure struct {
	Kind      Kind
	Condition operand.Operand
	Body      []statement.Statement
}

// NewBranch builds a Branch structure.
func NewBranch(condition operand.Operand, body ...statement.Statement) Structure {
	return Structure{Kind: KindBranch, Condition: condition, Body: append([]statement.Statement(nil), body...)}
}

// NewLoop builds a Loop structure.
func NewLoop(condition operand.Operand, body ...statement.Statement) Structure {
	return Structure{Kind: KindLoop, Condition: condition, Body: append([]statement.Statement(nil), body...)}
}

func (Structure) isItem() {}

func (s Structure) Statements() []statement.Statement {
	return append([]statement.Statement(nil), s.Body...)
}

func (s Structure) String() string {
	body := FromStatements(s.Body...).String()
	switch s.Kind {
	case KindLoop:
		return fmt.Sprintf("while (%s) { %s }", s.Condition, body)
	default:
		return fmt.Sprintf("if (%s) { %s }", s.Condition, body)
	}
}

// Defines returns the union of defines across the structure's body.
func (s Structure) Defines() *container.OrderedSet[operand.Variable] {
	out := container.NewOrderedSet[operand.Variable]()
	for _, st := range s.Body {
		out.AddAll(st.Defines())
	}
	return out
}

// Dependencies returns the union of dependencies across the structure's
// body.
func (s Structure) Dependencies() *container.OrderedSet[operand.Variable] {
	out := container.NewOrderedSet[operand.Variable]()
	for _, st := range s.Body {
		out.AddAll(st.Dependencies())
	}
	return out
}

// Variables returns Defines() ∪ Dependencies() of the body, plus the
// condition's variables (§4.3: "its variables and literals views include
// the condition's").
func (s Structure) Variables() *container.OrderedSet[operand.Variable] {
	out := container.NewOrderedSet[operand.Variable]()
	out.AddAll(s.Condition.Variables())
	for _, st := range s.Body {
		out.AddAll(st.Variables())
	}
	return out
}

// Literals returns the body's literals plus the condition's.
func (s Structure) Literals() *container.OrderedSet[operand.Literal] {
	out := container.NewOrderedSet[operand.Literal]()
	out.AddAll(s.Condition.Literals())
	for _, st := range s.Body {
		out.AddAll(st.Literals())
	}
	return out
}
