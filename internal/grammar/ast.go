package grammar

import (
	"github.com/alecthomas/participle/v2"
)

// PatternAST is the top-level parse of a `behavior` production: a flat
// sequence of items, each either a Disjunction or a plain Structure/
// Statement fragment. The transformer regroups adjacent non-Disjunction
// items into the Block segments behavior.Behavior requires.
type PatternAST struct {
	Items []*ItemAST `parser:"@@+"`
}

// ItemAST is one element of behavior = (block | disjunction)+, flattened
// to item = disjunction | structure | statement so the parser never has to
// decide up front how many statements belong to one "block" fragment.
type ItemAST struct {
	Disjunction *DisjunctionAST `parser:"  @@"`
	Branch      *BranchAST      `parser:"| @@"`
	Loop        *LoopAST        `parser:"| @@"`
	Statement   *StatementAST   `parser:"| @@"`
}

// BranchAST is `'if' '(' condition ')' '{' statement+ '}'`.
type BranchAST struct {
	Condition *ConditionAST   `parser:"\"if\" \"(\" @@ \")\""`
	Body      []*StatementAST `parser:"\"{\" @@+ \"}\""`
}

// LoopAST is `'while' '(' condition ')' '{' statement+ '}'`.
type LoopAST struct {
	Condition *ConditionAST   `parser:"\"while\" \"(\" @@ \")\""`
	Body      []*StatementAST `parser:"\"{\" @@+ \"}\""`
}

// DisjunctionAST is `'switch' '(' operand ')' '{' case+ '}'`.
type DisjunctionAST struct {
	Value *OperandAST `parser:"\"switch\" \"(\" @@ \")\" \"{\""`
	Cases []*CaseAST  `parser:"@@+ \"}\""`
}

// CaseAST is `'case' operand ':' ( '{' statement+ '}' | statement+ 'break' )`.
type CaseAST struct {
	Value      *OperandAST     `parser:"\"case\" @@ \":\""`
	Statements []*StatementAST `parser:"( \"{\" @@+ \"}\" | @@+ \"break\" )"`
}

// StatementAST is `assignment | call | reference`. Assignment and Call are
// tried first since both require a token (`=` or `(`) a bare operand
// reference never has; a bare operand is accepted last and validated by
// the transformer (a bare variable is rejected as an UnboundReference).
type StatementAST struct {
	Assignment *AssignmentAST `parser:"  @@"`
	Call       *CallAST       `parser:"| @@"`
	Reference  *OperandAST    `parser:"| @@"`
}

// AssignmentAST is `variable '=' (call | operand)`.
type AssignmentAST struct {
	Variable string      `parser:"@Ident \"=\""`
	Call     *CallAST    `parser:"(   @@"`
	Operand  *OperandAST `parser:" | @@ )"`
}

// CallAST is `name '(' (operand (',' operand)*)? ')'`.
type CallAST struct {
	Label      string      `parser:"@Ident"`
	Parameters []*ParamAST `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

// ParamAST is a call parameter, with an optional `index:` prefix (the
// indexed-parameter extension confirmed against the upstream test suite,
// not shown in the simplified EBNF).
type ParamAST struct {
	Index   *string     `parser:"( @Int \":\" )?"`
	Operand *OperandAST `parser:"@@"`
}

// ConditionAST is `operand ('|' operand)*`. A single operand is not
// wrapped; two or more become a Condition (§4.5).
type ConditionAST struct {
	Operands []*OperandAST `parser:"@@ ( \"|\" @@ )*"`
}

// OperandAST is `compound | primary`, flattened to
// `primary ('+' primary)*`: a single primary is not wrapped; two or more
// become a Compound (§4.5).
type OperandAST struct {
	Primaries []*PrimaryAST `parser:"@@ ( \"+\" @@ )*"`
}

// PrimaryAST is `integer | string | unbound | enum-name | variable`. The
// wildcard "_" and bare identifiers are both lexed as Ident; the
// transformer tells them apart (and resolves enum names against the
// rule's definitions table).
type PrimaryAST struct {
	Hex   *string `parser:"  @Hex"`
	Int   *string `parser:"| @Int"`
	Str   *string `parser:"| @String"`
	Ident *string `parser:"| @Ident"`
}

// Parser is the participle parser for the rule pattern grammar, built once
// at package initialization.
var Parser = participle.MustBuild[PatternAST](
	participle.Lexer(ruleLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
