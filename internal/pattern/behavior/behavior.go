// Package behavior implements the top-level pattern AST node (§3, §4.4): a
// Behavior is an alternation of unconditional Block segments and
// switch-like Disjunctions, and expand() produces every concrete Block the
// pattern denotes.
//
// The grammar is `behavior = (block | disjunction)+`: a rule's pattern
// text is a flat sequence of base-block fragments and disjunctions in
// declaration order. A Behavior therefore holds exactly
// len(Disjunctions)+1 Block segments — one unconditional fragment before
// the first disjunction, one between each adjacent pair, and one after the
// last — so that expand() can re-interleave them in source order: segment,
// chosen alternative, segment, chosen alternative, …, final segment.
package behavior

import (
	"fmt"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/block"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
	"github.com/dewolf-research/rikai-frontend/pkg/container"
)

// Disjunction models a `switch (value) { case … }` choice point: one
// alternative Block is picked per case name, in insertion order.
type Disjunction struct {
	Value         operand.Operand
	Possibilities *container.OrderedMap[string, block.Block]
}

// NewDisjunction builds a Disjunction over a value and its ordered case
// alternatives. Duplicate case names are not rejected: the first
// alternative under a name is kept and later ones are dropped.
func NewDisjunction(value operand.Operand, cases ...container.Entry[string, block.Block]) Disjunction {
	possibilities := container.NewOrderedMap[string, block.Block](len(cases))
	for _, c := range cases {
		possibilities.PutIfAbsent(c.Key, c.Value)
	}
	return Disjunction{Value: value, Possibilities: possibilities}
}

// Behavior is a pattern AST: blocks is a tuple of len(disjunctions)+1
// unconditional Block segments, interleaved in declaration order around
// the chosen alternative of each disjunction.
type Behavior struct {
	Blocks       []block.Block
	Disjunctions []Disjunction
}

// New builds a Behavior from its interleaved segments and disjunctions.
// len(segments) must equal len(disjunctions)+1; a Behavior with zero
// disjunctions is simply its single segment.
func New(segments []block.Block, disjunctions []Disjunction) (Behavior, error) {
	if len(segments) != len(disjunctions)+1 {
		return Behavior{}, fmt.Errorf(
			"behavior requires len(disjunctions)+1 block segments, got %d segments and %d disjunctions",
			len(segments), len(disjunctions))
	}
	return Behavior{
		Blocks:       append([]block.Block(nil), segments...),
		Disjunctions: append([]Disjunction(nil), disjunctions...),
	}, nil
}

// Expand produces every concrete Block the behavior denotes: the cartesian
// product over disjunctions, in declaration order, with each disjunction's
// alternatives iterated in insertion order (§4.4). If any disjunction has
// zero possibilities, expansion is empty. With zero disjunctions, expand
// yields exactly the behavior's single segment.
func (b Behavior) Expand() []block.Block {
	if len(b.Disjunctions) == 0 {
		return []block.Block{b.Blocks[0]}
	}
	for _, d := range b.Disjunctions {
		if d.Possibilities.Len() == 0 {
			return nil
		}
	}

	choiceKeys := make([][]string, len(b.Disjunctions))
	for i, d := range b.Disjunctions {
		choiceKeys[i] = d.Possibilities.Keys()
	}

	var out []block.Block
	indices := make([]int, len(b.Disjunctions))
	for {
		out = append(out, b.concatWith(indices, choiceKeys))

		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(choiceKeys[pos]) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}

// concatWith assembles one expansion: segment, chosen alternative,
// segment, …, final segment, for the given choice vector.
func (b Behavior) concatWith(indices []int, choiceKeys [][]string) block.Block {
	result := b.Blocks[0]
	for i, d := range b.Disjunctions {
		key := choiceKeys[i][indices[i]]
		chosen, _ := d.Possibilities.Get(key)
		result = block.Concat(result, chosen)
		result = block.Concat(result, b.Blocks[i+1])
	}
	return result
}

// Len returns the number of expansions this behavior denotes without
// materializing them, equal to the product of each disjunction's
// possibility count (one if there are no disjunctions).
func (b Behavior) Len() int {
	if len(b.Disjunctions) == 0 {
		return 1
	}
	total := 1
	for _, d := range b.Disjunctions {
		if d.Possibilities.Len() == 0 {
			return 0
		}
		total *= d.Possibilities.Len()
	}
	return total
}
