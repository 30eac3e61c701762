// Package operand implements the leaf nodes of the behavior pattern AST:
// literals, variables and the compound/condition operand wrappers built
// from them (§3, §4.1 of the specification).
//
// Every type here is an immutable value object with structural equality.
// Construction is the only point of validation; once built, a node is
// read-only and safe to share across goroutines without synchronization.
package operand

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dewolf-research/rikai-frontend/pkg/container"
)

// Operand is the sealed variant set of all operand kinds: string/integer/
// enum literals, bound and unbound variables, and the compound/condition
// wrappers over them.
type Operand interface {
	fmt.Stringer

	// Variables returns the Variable nodes transitively reachable from this
	// operand, in first-encountered order. Pure function of the node.
	Variables() *container.OrderedSet[Variable]

	// Literals returns the Literal nodes transitively reachable from this
	// operand, in first-encountered order. Pure function of the node.
	Literals() *container.OrderedSet[Literal]

	// sealed restricts Operand implementations to this package.
	sealed()
}

// Literal is the sealed sub-variant of Operand covering StringLiteral,
// IntegerLiteral and EnumValue.
type Literal interface {
	Operand
	isLiteral()
}

// MalformedLiteral reports that a token in operand position is neither a
// valid integer, string, enum name, nor identifier (§7.3).
type MalformedLiteral struct {
	Text   string
	Reason string
}

func (e *MalformedLiteral) Error() string {
	return fmt.Sprintf("malformed literal %q: %s", e.Text, e.Reason)
}

// StringLiteral holds raw textual payload without surrounding quotes.
type StringLiteral struct {
	Value string
}

// NewStringLiteral builds a StringLiteral from its unquoted payload.
func NewStringLiteral(value string) StringLiteral { return StringLiteral{Value: value} }

func (StringLiteral) sealed()    {}
func (StringLiteral) isLiteral() {}

func (l StringLiteral) String() string { return fmt.Sprintf("%q", l.Value) }

func (l StringLiteral) Variables() *container.OrderedSet[Variable] {
	return container.NewOrderedSet[Variable]()
}

func (l StringLiteral) Literals() *container.OrderedSet[Literal] {
	return container.NewOrderedSetOf[Literal](l)
}

// IntegerLiteral holds a signed integer value with at least 64-bit range.
type IntegerLiteral struct {
	Value int64
}

// NewIntegerLiteral builds an IntegerLiteral directly from a known value.
func NewIntegerLiteral(value int64) IntegerLiteral { return IntegerLiteral{Value: value} }

var integerPattern = regexp.MustCompile(`^[+-]?(0[xX][0-9a-fA-F]+|[0-9]+)$`)

// ParseIntegerLiteral parses text into an IntegerLiteral. It accepts an
// optional leading sign and the case-insensitive hex prefixes 0x/0X; any
// radix ambiguity resolves in favor of an explicit hex prefix (§4.1).
func ParseIntegerLiteral(text string) (IntegerLiteral, error) {
	if !integerPattern.MatchString(text) {
		return IntegerLiteral{}, &MalformedLiteral{Text: text, Reason: "not a valid signed integer or hex literal"}
	}

	sign := int64(1)
	rest := text
	if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "-") {
		sign = -1
		rest = rest[1:]
	}

	var (
		value int64
		err   error
	)
	if len(rest) > 2 && (rest[:2] == "0x" || rest[:2] == "0X") {
		value, err = strconv.ParseInt(rest[2:], 16, 64)
	} else {
		value, err = strconv.ParseInt(rest, 10, 64)
	}
	if err != nil {
		return IntegerLiteral{}, &MalformedLiteral{Text: text, Reason: err.Error()}
	}
	return IntegerLiteral{Value: sign * value}, nil
}

func (IntegerLiteral) sealed()    {}
func (IntegerLiteral) isLiteral() {}

func (l IntegerLiteral) String() string {
	return formatHex(l.Value)
}

func formatHex(value int64) string {
	if value < 0 {
		return "-0x" + strconv.FormatUint(uint64(-value), 16)
	}
	return "0x" + strconv.FormatUint(uint64(value), 16)
}

func (l IntegerLiteral) Variables() *container.OrderedSet[Variable] {
	return container.NewOrderedSet[Variable]()
}

func (l IntegerLiteral) Literals() *container.OrderedSet[Literal] {
	return container.NewOrderedSetOf[Literal](l)
}

// EnumValue is a named integer constant. It renders as its name but
// matches as the integer it resolves to, so later processing never needs
// to re-consult the enum definitions table (§3 invariant 3).
type EnumValue struct {
	Name  string
	Value int64
}

// NewEnumValue builds an EnumValue already resolved to its integer value.
func NewEnumValue(name string, value int64) EnumValue {
	return EnumValue{Name: name, Value: value}
}

func (EnumValue) sealed()    {}
func (EnumValue) isLiteral() {}

func (e EnumValue) String() string { return e.Name }

func (e EnumValue) Variables() *container.OrderedSet[Variable] {
	return container.NewOrderedSet[Variable]()
}

func (e EnumValue) Literals() *container.OrderedSet[Literal] {
	return container.NewOrderedSetOf[Literal](Literal(e))
}

// AsInteger returns the IntegerLiteral an EnumValue matches as.
func (e EnumValue) AsInteger() IntegerLiteral { return IntegerLiteral{Value: e.Value} }

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Variable is a bound variable identified by name; equality is by name.
type Variable struct {
	Name string
}

// NewVariable builds a Variable, validating that name is a legal
// identifier. The literal name "_" is reserved for UnboundVariable and is
// rejected here.
func NewVariable(name string) (Variable, error) {
	if name == "_" {
		return Variable{}, &MalformedLiteral{Text: name, Reason: "\"_\" denotes the unbound wildcard, not a variable"}
	}
	if !identifierPattern.MatchString(name) {
		return Variable{}, &MalformedLiteral{Text: name, Reason: "not a valid identifier"}
	}
	return Variable{Name: name}, nil
}

func (Variable) sealed() {}

func (v Variable) String() string { return v.Name }

func (v Variable) Variables() *container.OrderedSet[Variable] {
	return container.NewOrderedSetOf(v)
}

func (v Variable) Literals() *container.OrderedSet[Literal] {
	return container.NewOrderedSet[Literal]()
}

// UnboundVariable is the wildcard operand; it never constrains anything
// and is rendered as "_". It is a singleton: all instances compare equal.
type UnboundVariable struct{}

// Unbound is the single UnboundVariable value.
var Unbound = UnboundVariable{}

func (UnboundVariable) sealed() {}

func (UnboundVariable) String() string { return "_" }

func (UnboundVariable) Variables() *container.OrderedSet[Variable] {
	return container.NewOrderedSet[Variable]()
}

func (UnboundVariable) Literals() *container.OrderedSet[Literal] {
	return container.NewOrderedSet[Literal]()
}

// Compound models a value-merge expression "a + b + …".
type Compound struct {
	Operands []Operand
}

// NewCompound builds a Compound from two or more operands. The parser only
// ever wraps an operand in Compound once "+" actually appears in the
// source; a single primary is never wrapped (§4.5).
func NewCompound(operands ...Operand) (Compound, error) {
	if len(operands) < 2 {
		return Compound{}, fmt.Errorf("compound operand requires at least two operands, got %d", len(operands))
	}
	return Compound{Operands: append([]Operand(nil), operands...)}, nil
}

func (Compound) sealed() {}

func (c Compound) String() string {
	parts := make([]string, len(c.Operands))
	for i, o := range c.Operands {
		parts[i] = o.String()
	}
	return strings.Join(parts, " + ")
}

func (c Compound) Variables() *container.OrderedSet[Variable] {
	out := container.NewOrderedSet[Variable]()
	for _, o := range c.Operands {
		out.AddAll(o.Variables())
	}
	return out
}

func (c Compound) Literals() *container.OrderedSet[Literal] {
	out := container.NewOrderedSet[Literal]()
	for _, o := range c.Operands {
		out.AddAll(o.Literals())
	}
	return out
}

// Condition models a control-flow test "a | b | …". A single-operand
// condition is represented directly by that operand, never wrapped (§4.5).
type Condition struct {
	Operands []Operand
}

// NewCondition builds a Condition from two or more operands.
func NewCondition(operands ...Operand) (Condition, error) {
	if len(operands) < 2 {
		return Condition{}, fmt.Errorf("condition requires at least two operands, got %d", len(operands))
	}
	return Condition{Operands: append([]Operand(nil), operands...)}, nil
}

func (Condition) sealed() {}

func (c Condition) String() string {
	parts := make([]string, len(c.Operands))
	for i, o := range c.Operands {
		parts[i] = o.String()
	}
	return strings.Join(parts, " | ")
}

func (c Condition) Variables() *container.OrderedSet[Variable] {
	out := container.NewOrderedSet[Variable]()
	for _, o := range c.Operands {
		out.AddAll(o.Variables())
	}
	return out
}

func (c Condition) Literals() *container.OrderedSet[Literal] {
	out := container.NewOrderedSet[Literal]()
	for _, o := range c.Operands {
		out.AddAll(o.Literals())
	}
	return out
}
