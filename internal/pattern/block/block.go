// Package block implements the Block/Structure layer of the behavior
// pattern AST (§3, §4.3): an ordered sequence of statements (optionally
// interleaved with nested Branch/Loop structures, per the grammar's
// `block = (structure | statement)+`), plus the derived views the
// constraint generator and matcher rely on.
package block

import (
	"strings"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/statement"
	"github.com/dewolf-research/rikai-frontend/pkg/container"
)

// Item is a single element of a Block's statement sequence. The grammar
// allows a Branch or Loop to appear anywhere a statement can, so Item is
// implemented by both StatementItem (a wrapped statement.Statement) and
// Structure.
type Item interface {
	// Defines returns the variables this item binds.
	Defines() *container.OrderedSet[operand.Variable]

	// Dependencies returns the variables this item reads.
	Dependencies() *container.OrderedSet[operand.Variable]

	// Variables returns Defines() ∪ Dependencies(), transitively.
	Variables() *container.OrderedSet[operand.Variable]

	// Literals returns every literal transitively reachable from this item.
	Literals() *container.OrderedSet[operand.Literal]

	// Statements flattens this item into the statement.Statement leaves it
	// is built from: itself for a plain statement, its body's statements
	// for a Structure.
	Statements() []statement.Statement

	String() string

	isItem()
}

// StatementItem adapts a bare statement.Statement to Item. Callers that
// need to distinguish a plain statement from a nested Structure (e.g. the
// constraint generator) type-assert an Item against this type.
type StatementItem struct {
	statement.Statement
}

func (s StatementItem) isItem() {}

func (s StatementItem) Statements() []statement.Statement {
	return []statement.Statement{s.Statement}
}

// Of wraps a bare statement as a Block Item.
func Of(s statement.Statement) Item { return StatementItem{s} }

// Block is an ordered sequence of Items: statements, optionally interleaved
// with nested Branch/Loop structures.
type Block struct {
	Items []Item
}

// New builds a Block from an ordered sequence of items.
func New(items ...Item) Block {
	return Block{Items: append([]Item(nil), items...)}
}

// FromStatements builds a Block directly from bare statements, with no
// nested structures.
func FromStatements(statements ...statement.Statement) Block {
	items := make([]Item, len(statements))
	for i, s := range statements {
		items[i] = Of(s)
	}
	return Block{Items: items}
}

func (b Block) String() string {
	parts := make([]string, len(b.Items))
	for i, item := range b.Items {
		parts[i] = item.String()
	}
	return strings.Join(parts, "\n")
}

// Statements flattens the block into its leaf statements, descending one
// level into any nested Structure bodies (the grammar permits no deeper
// nesting: a structure's body is a plain statement+).
func (b Block) Statements() []statement.Statement {
	var out []statement.Statement
	for _, item := range b.Items {
		out = append(out, item.Statements()...)
	}
	return out
}

// Calls returns every Call node reachable from the block, unwrapping
// CallAssignment to its Call value.
func (b Block) Calls() []statement.Call {
	var out []statement.Call
	for _, s := range b.Statements() {
		switch v := s.(type) {
		case statement.Call:
			out = append(out, v)
		case statement.CallAssignment:
			out = append(out, v.Value)
		}
	}
	return out
}

// References returns every Reference statement in the block.
func (b Block) References() []statement.Reference {
	var out []statement.Reference
	for _, s := range b.Statements() {
		if r, ok := s.(statement.Reference); ok {
			out = append(out, r)
		}
	}
	return out
}

// Labels returns the set of call labels invoked anywhere in the block.
func (b Block) Labels() *container.OrderedSet[string] {
	out := container.NewOrderedSet[string]()
	for _, c := range b.Calls() {
		out.Add(c.Label)
	}
	return out
}

// Assignments returns every Assignment statement in the block, in
// declaration order.
func (b Block) Assignments() []statement.Assignment {
	var out []statement.Assignment
	for _, s := range b.Statements() {
		if a, ok := s.(statement.Assignment); ok {
			out = append(out, a)
		}
	}
	return out
}

// Variables returns every variable defined or depended on anywhere in the
// block, including any nested structure's condition.
func (b Block) Variables() *container.OrderedSet[operand.Variable] {
	out := container.NewOrderedSet[operand.Variable]()
	for _, item := range b.Items {
		out.AddAll(item.Variables())
	}
	return out
}

// Literals returns every literal reachable anywhere in the block, including
// any nested structure's condition.
func (b Block) Literals() *container.OrderedSet[operand.Literal] {
	out := container.NewOrderedSet[operand.Literal]()
	for _, item := range b.Items {
		out.AddAll(item.Literals())
	}
	return out
}

// Definitions maps each assigned Variable to the Assignment that defines
// it, scanning in declaration order. On a duplicate assignee the first
// assignment wins; later ones still exist as statements but are absent
// from this mapping (§4.3).
func (b Block) Definitions() *container.OrderedMap[operand.Variable, statement.Assignment] {
	out := container.NewOrderedMap[operand.Variable, statement.Assignment]()
	for _, a := range b.Assignments() {
		out.PutIfAbsent(a.Assignee(), a)
	}
	return out
}

// Definition looks up the Assignment that defines v, if any.
func (b Block) Definition(v operand.Variable) (statement.Assignment, bool) {
	return b.Definitions().Get(v)
}

// DependentsOf returns every statement in the block whose dependencies
// include v.
func (b Block) DependentsOf(v operand.Variable) []statement.Statement {
	var out []statement.Statement
	for _, s := range b.Statements() {
		if s.Dependencies().Contains(v) {
			out = append(out, s)
		}
	}
	return out
}

// CallsLabeled returns every Call (including CallAssignment values) in the
// block whose label matches name.
func (b Block) CallsLabeled(name string) []statement.Call {
	var out []statement.Call
	for _, c := range b.Calls() {
		if c.Label == name {
			out = append(out, c)
		}
	}
	return out
}

// Concat concatenates two blocks' item sequences, the primitive expansion
// operates with (§4.3).
func Concat(a, b Block) Block {
	items := make([]Item, 0, len(a.Items)+len(b.Items))
	items = append(items, a.Items...)
	items = append(items, b.Items...)
	return Block{Items: items}
}
