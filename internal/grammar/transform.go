package grammar

import (
	"fmt"
	"strconv"

	"github.com/dewolf-research/rikai-frontend/internal/pattern/behavior"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/block"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/operand"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/statement"
	"github.com/dewolf-research/rikai-frontend/pkg/container"
)

// ParsePattern parses rule pattern text into a behavior.Behavior.
// definitions maps enum names to their resolved integer values, supplied
// by the owning rule file's optional `definitions` key (§4.5); an
// identifier that appears there becomes an EnumValue, otherwise a
// Variable.
func ParsePattern(text string, definitions map[string]int64) (behavior.Behavior, error) {
	ast, err := Parser.ParseString("", text)
	if err != nil {
		return behavior.Behavior{}, &ParseError{Text: text, Err: err}
	}
	tr := &transformer{definitions: definitions}
	return tr.pattern(ast)
}

// transformer converts a parsed PatternAST into the pattern AST packages
// (operand/statement/block/behavior), resolving identifiers against the
// owning rule's definitions table.
type transformer struct {
	definitions map[string]int64
}

func (tr *transformer) pattern(p *PatternAST) (behavior.Behavior, error) {
	var segments []block.Block
	var disjunctions []behavior.Disjunction
	var current []block.Item

	flush := func() {
		segments = append(segments, block.New(current...))
		current = nil
	}

	for _, item := range p.Items {
		switch {
		case item.Disjunction != nil:
			d, err := tr.disjunction(item.Disjunction)
			if err != nil {
				return behavior.Behavior{}, err
			}
			flush()
			disjunctions = append(disjunctions, d)
		case item.Branch != nil:
			s, err := tr.branch(item.Branch)
			if err != nil {
				return behavior.Behavior{}, err
			}
			current = append(current, s)
		case item.Loop != nil:
			s, err := tr.loop(item.Loop)
			if err != nil {
				return behavior.Behavior{}, err
			}
			current = append(current, s)
		case item.Statement != nil:
			s, err := tr.statement(item.Statement)
			if err != nil {
				return behavior.Behavior{}, err
			}
			current = append(current, block.Of(s))
		default:
			return behavior.Behavior{}, fmt.Errorf("grammar: behavior item with no alternative set")
		}
	}
	flush()

	return behavior.New(segments, disjunctions)
}

func (tr *transformer) branch(b *BranchAST) (block.Structure, error) {
	cond, err := tr.condition(b.Condition)
	if err != nil {
		return block.Structure{}, err
	}
	body, err := tr.statements(b.Body)
	if err != nil {
		return block.Structure{}, err
	}
	return block.NewBranch(cond, body...), nil
}

func (tr *transformer) loop(l *LoopAST) (block.Structure, error) {
	cond, err := tr.condition(l.Condition)
	if err != nil {
		return block.Structure{}, err
	}
	body, err := tr.statements(l.Body)
	if err != nil {
		return block.Structure{}, err
	}
	return block.NewLoop(cond, body...), nil
}

func (tr *transformer) statements(asts []*StatementAST) ([]statement.Statement, error) {
	out := make([]statement.Statement, len(asts))
	for i, a := range asts {
		s, err := tr.statement(a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (tr *transformer) statement(s *StatementAST) (statement.Statement, error) {
	switch {
	case s.Assignment != nil:
		return tr.assignment(s.Assignment)
	case s.Call != nil:
		call, err := tr.call(s.Call)
		if err != nil {
			return nil, err
		}
		return call, nil
	case s.Reference != nil:
		op, err := tr.operand(s.Reference)
		if err != nil {
			return nil, err
		}
		lit, ok := op.(operand.Literal)
		if !ok {
			return nil, &UnboundReference{Name: op.String()}
		}
		return statement.NewReference(lit), nil
	default:
		return nil, fmt.Errorf("grammar: statement with no alternative set")
	}
}

func (tr *transformer) assignment(a *AssignmentAST) (statement.Statement, error) {
	v, err := operand.NewVariable(a.Variable)
	if err != nil {
		return nil, err
	}
	if a.Call != nil {
		call, err := tr.call(a.Call)
		if err != nil {
			return nil, err
		}
		return statement.NewCallAssignment(v, call), nil
	}
	op, err := tr.operand(a.Operand)
	if err != nil {
		return nil, err
	}
	lit, ok := op.(operand.Literal)
	if !ok {
		return nil, fmt.Errorf("assignment to %q requires a literal value, got %s", a.Variable, op)
	}
	return statement.NewLiteralAssignment(v, lit), nil
}

// call transforms a CallAST, resolving indexed parameters: a parameter
// without an explicit "index:" prefix occupies the next position after
// the last one used, and every position skipped by an explicit index is
// backfilled with UnboundVariable up to the highest index seen.
func (tr *transformer) call(c *CallAST) (statement.Call, error) {
	positions := map[int]operand.Operand{}
	pos := 0
	maxIndex := 0
	for _, p := range c.Parameters {
		if p.Index != nil {
			idx, err := strconv.Atoi(*p.Index)
			if err != nil {
				return statement.Call{}, fmt.Errorf("malformed parameter index %q: %w", *p.Index, err)
			}
			pos = idx
		} else {
			pos++
		}
		op, err := tr.operand(p.Operand)
		if err != nil {
			return statement.Call{}, err
		}
		positions[pos] = op
		if pos > maxIndex {
			maxIndex = pos
		}
	}

	params := make([]operand.Operand, maxIndex)
	for i := 1; i <= maxIndex; i++ {
		if op, ok := positions[i]; ok {
			params[i-1] = op
		} else {
			params[i-1] = operand.Unbound
		}
	}
	return statement.NewCall(c.Label, params...), nil
}

func (tr *transformer) disjunction(d *DisjunctionAST) (behavior.Disjunction, error) {
	value, err := tr.operand(d.Value)
	if err != nil {
		return behavior.Disjunction{}, err
	}

	entries := make([]container.Entry[string, block.Block], len(d.Cases))
	for i, c := range d.Cases {
		key, err := tr.caseKey(c.Value)
		if err != nil {
			return behavior.Disjunction{}, err
		}
		stmts, err := tr.statements(c.Statements)
		if err != nil {
			return behavior.Disjunction{}, err
		}
		entries[i] = container.Entry[string, block.Block]{Key: key, Value: block.FromStatements(stmts...)}
	}
	return behavior.NewDisjunction(value, entries...), nil
}

// caseKey derives the map key a `case` alternative is stored under: a
// string literal's raw value, or the rendered text of any other operand.
func (tr *transformer) caseKey(o *OperandAST) (string, error) {
	op, err := tr.operand(o)
	if err != nil {
		return "", err
	}
	if s, ok := op.(operand.StringLiteral); ok {
		return s.Value, nil
	}
	return op.String(), nil
}

func (tr *transformer) condition(c *ConditionAST) (operand.Operand, error) {
	if len(c.Operands) == 1 {
		return tr.operand(c.Operands[0])
	}
	ops := make([]operand.Operand, len(c.Operands))
	for i, o := range c.Operands {
		op, err := tr.operand(o)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	cond, err := operand.NewCondition(ops...)
	if err != nil {
		return nil, err
	}
	return cond, nil
}

func (tr *transformer) operand(o *OperandAST) (operand.Operand, error) {
	if len(o.Primaries) == 1 {
		return tr.primary(o.Primaries[0])
	}
	ops := make([]operand.Operand, len(o.Primaries))
	for i, p := range o.Primaries {
		op, err := tr.primary(p)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	compound, err := operand.NewCompound(ops...)
	if err != nil {
		return nil, err
	}
	return compound, nil
}

func (tr *transformer) primary(p *PrimaryAST) (operand.Operand, error) {
	switch {
	case p.Hex != nil, p.Int != nil:
		text := p.Hex
		if text == nil {
			text = p.Int
		}
		lit, err := operand.ParseIntegerLiteral(*text)
		if err != nil {
			return nil, err
		}
		return lit, nil
	case p.Str != nil:
		value, err := unquoteString(*p.Str)
		if err != nil {
			return nil, err
		}
		return operand.NewStringLiteral(value), nil
	case p.Ident != nil:
		name := *p.Ident
		if name == "_" {
			return operand.Unbound, nil
		}
		if value, ok := tr.definitions[name]; ok {
			return operand.NewEnumValue(name, value), nil
		}
		v, err := operand.NewVariable(name)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("grammar: primary with no alternative set")
	}
}

func unquoteString(raw string) (string, error) {
	value, err := strconv.Unquote(raw)
	if err != nil {
		return "", &operand.MalformedLiteral{Text: raw, Reason: err.Error()}
	}
	return value, nil
}
