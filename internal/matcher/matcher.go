// Package matcher implements §4.7: it drives a Behavior's expansions
// against a program database, stopping at the first expansion that
// produces a non-empty result set.
package matcher

import (
	"context"

	"github.com/dewolf-research/rikai-frontend/internal/constraint"
	"github.com/dewolf-research/rikai-frontend/internal/database"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/behavior"
)

// Match is one result row: a sequence of integer line numbers, one per
// `$l<id>` selected in the generated `get` clause, in that clause's order.
type Match []int64

// Matcher ties Behavior.Expand() to the constraint generator and a single
// open database handle (§5: the database session is held by the matcher
// for the lifetime of a rule set).
type Matcher struct {
	db database.Database
}

// New builds a Matcher over an already-opened database handle.
func New(db database.Database) *Matcher {
	return &Matcher{db: db}
}

// Run evaluates b's expansions in order and returns the matches of the
// first expansion whose query yields a non-empty result set; later
// expansions are never evaluated (§4.7). If every expansion is empty, Run
// returns an empty, non-nil slice.
func (m *Matcher) Run(ctx context.Context, b behavior.Behavior) ([]Match, error) {
	for _, block := range b.Expand() {
		query := constraint.GenerateQuery(block)

		rows, err := m.db.Query(ctx, query.Text)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			continue
		}

		matches := make([]Match, len(rows))
		for i, row := range rows {
			match := make(Match, len(query.Variables))
			for j, name := range query.Variables {
				match[j] = row[name].Value()
			}
			matches[i] = match
		}
		return matches, nil
	}
	return []Match{}, nil
}
