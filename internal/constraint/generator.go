// Package constraint implements the constraint generator (§4.6): it walks
// an expanded block.Block and emits the TypeDB-style "match ... get ...;"
// query text the external graph database consumes.
//
// Generator IDs are per-node opaque tokens stable only within a single
// Generate call, never across calls or processes (§9, "per-node identity
// tokens"). A Variable's or EnumValue's id is its name, shared by every
// reference to it; a plain literal's id is assigned the first time that
// distinct value is encountered; a Call's id is assigned fresh for every
// occurrence, since two textually identical calls in one block are still
// distinct entities to match.
package constraint

import (
	"fmt"
	"strings"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/block"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/statement"
)

// Query is a generated constraint document paired with the ordered list of
// `get`-clause variable names, so a caller can project an unordered result
// row back into the positional tuple §4.7 specifies without re-parsing the
// query text.
type Query struct {
	Text      string
	Variables []string
}

// Generate emits the constraint query document for an expanded block.
func Generate(b block.Block) string {
	return GenerateQuery(b).Text
}

// GenerateQuery is Generate, additionally reporting the `get` clause's
// variable order.
func GenerateQuery(b block.Block) Query {
	g := &generator{literalIDs: map[operand.Literal]string{}, emittedLiterals: map[string]bool{}}

	for _, v := range b.Variables().Values() {
		g.line(fmt.Sprintf("$%s isa Variable;", v.Name))
	}
	for _, lit := range b.Literals().Values() {
		g.emitLiteralEntity(lit)
	}

	for _, item := range b.Items {
		g.emitItem(item)
	}

	var out strings.Builder
	out.WriteString("match\n")
	for _, line := range g.lines {
		out.WriteString("  " + line + "\n")
	}
	out.WriteString("get" + getClause(g.getVars) + ";")

	variables := make([]string, len(g.getVars))
	for i, v := range g.getVars {
		variables[i] = strings.TrimPrefix(v, "$")
	}
	return Query{Text: out.String(), Variables: variables}
}

func getClause(vars []string) string {
	if len(vars) == 0 {
		return ""
	}
	return " " + strings.Join(vars, ", ")
}

type generator struct {
	lines           []string
	getVars         []string
	literalIDs      map[operand.Literal]string
	emittedLiterals map[string]bool
	nextLiteral     int
	nextCall        int
	nextCompound    int
}

func (g *generator) line(text string) { g.lines = append(g.lines, text) }

// literalID returns a literal's stable id, assigning one on first sight.
// An EnumValue's id is its name (§4.2); other literals get a synthetic
// "l<n>" token in first-encountered order.
func (g *generator) literalID(lit operand.Literal) string {
	if e, ok := lit.(operand.EnumValue); ok {
		return e.Name
	}
	if id, ok := g.literalIDs[lit]; ok {
		return id
	}
	id := fmt.Sprintf("l%d", g.nextLiteral)
	g.nextLiteral++
	g.literalIDs[lit] = id
	return id
}

// emitLiteralEntity emits a literal's declarative entity line the first
// time it is reached, from whichever call site gets there first — the
// top-level dedup pass in GenerateQuery, or first use in a statement,
// call parameter, or structure body. Later calls for the same id are
// no-ops, since the union of all operands is constrained exactly once
// (§4.6).
func (g *generator) emitLiteralEntity(lit operand.Literal) {
	id := g.literalID(lit)
	if g.emittedLiterals[id] {
		return
	}
	g.emittedLiterals[id] = true
	switch v := lit.(type) {
	case operand.StringLiteral:
		g.line(fmt.Sprintf("$%s isa StringLiteral, has StringValue %q;", id, v.Value))
	case operand.IntegerLiteral:
		g.line(fmt.Sprintf("$%s isa IntegerLiteral, has IntegerValue %d;", id, v.Value))
	case operand.EnumValue:
		g.line(fmt.Sprintf("$%s isa IntegerLiteral, has IntegerValue %d;", id, v.Value))
	}
}

// operandID resolves the id used to reference op in a parameter or
// conditional edge. UnboundVariable has no id; callers must check for it
// separately, since it contributes no constraint at all.
func (g *generator) operandID(op operand.Operand) string {
	switch v := op.(type) {
	case operand.Variable:
		return v.Name
	case operand.Literal:
		return g.literalID(v)
	default:
		// Compound/Condition operands have no declarative constraint form
		// of their own in §4.6; they are linked by a synthetic per-site id
		// so the edges referencing them still resolve.
		id := fmt.Sprintf("m%d", g.nextCompound)
		g.nextCompound++
		return id
	}
}

// emitItem dispatches a Block Item: a plain statement, or a Structure
// whose body is emitted normally and then linked to its condition via
// Conditional edges.
func (g *generator) emitItem(item block.Item) {
	if s, ok := item.(block.StatementItem); ok {
		g.emitStatement(s.Statement)
		return
	}
	if structure, ok := item.(block.Structure); ok {
		g.emitStructure(structure)
		return
	}
}

func (g *generator) emitStatement(s statement.Statement) {
	switch v := s.(type) {
	case statement.Call:
		g.emitCall(v)
	case statement.Reference:
		g.emitLiteralEntity(v.Literal)
	case statement.LiteralAssignment:
		g.emitLiteralEntity(v.Value)
		g.line(fmt.Sprintf("($%s, $%s) isa Definition;", v.AssigneeVar.Name, g.literalID(v.Value)))
	case statement.CallAssignment:
		callID, _ := g.emitCall(v.Value)
		g.line(fmt.Sprintf("($%s, $%s) isa Definition;", v.AssigneeVar.Name, callID))
	}
}

// emitCall emits a Call's own entity line and its parameter edges, and
// records its line variable in the get list.
func (g *generator) emitCall(c statement.Call) (id, lineVar string) {
	id = fmt.Sprintf("c%d", g.nextCall)
	g.nextCall++
	lineVar = "l" + id
	g.line(fmt.Sprintf("$%s isa Call, has Label %q, has Line $%s;", id, c.Label, lineVar))

	for j, p := range c.Parameters {
		if _, unbound := p.(operand.UnboundVariable); unbound {
			continue
		}
		if lit, ok := p.(operand.Literal); ok {
			g.emitLiteralEntity(lit)
		}
		pid := g.operandID(p)
		g.line(fmt.Sprintf("($%s, $%s) isa Parameter, has Index %d;", pid, id, j+1))
	}

	g.getVars = append(g.getVars, "$"+lineVar)
	return id, lineVar
}

func (g *generator) emitStructure(s block.Structure) {
	var bodyIDs []string
	for _, st := range s.Body {
		switch v := st.(type) {
		case statement.Call:
			id, _ := g.emitCall(v)
			bodyIDs = append(bodyIDs, id)
		case statement.CallAssignment:
			id, _ := g.emitCall(v.Value)
			g.line(fmt.Sprintf("($%s, $%s) isa Definition;", v.AssigneeVar.Name, id))
			bodyIDs = append(bodyIDs, id)
		case statement.LiteralAssignment:
			g.emitLiteralEntity(v.Value)
			litID := g.literalID(v.Value)
			g.line(fmt.Sprintf("($%s, $%s) isa Definition;", v.AssigneeVar.Name, litID))
			bodyIDs = append(bodyIDs, litID)
		case statement.Reference:
			g.emitLiteralEntity(v.Literal)
			bodyIDs = append(bodyIDs, g.literalID(v.Literal))
		}
	}

	for _, o := range flattenOperand(s.Condition) {
		if _, unbound := o.(operand.UnboundVariable); unbound {
			continue
		}
		oid := g.operandID(o)
		for _, bodyID := range bodyIDs {
			g.line(fmt.Sprintf("($%s, $%s) isa Conditional;", oid, bodyID))
		}
	}
}

// flattenOperand returns the leaf operands a condition aggregates over:
// Compound/Condition expand to their members, any other operand is itself
// the single member (§4.6: "for each pair (o ∈ O.variables ∪ O.literals, …").
func flattenOperand(o operand.Operand) []operand.Operand {
	switch v := o.(type) {
	case operand.Compound:
		var out []operand.Operand
		for _, sub := range v.Operands {
			out = append(out, flattenOperand(sub)...)
		}
		return out
	case operand.Condition:
		var out []operand.Operand
		for _, sub := range v.Operands {
			out = append(out, flattenOperand(sub)...)
		}
		return out
	default:
		return []operand.Operand{o}
	}
}
