// Package report renders matcher results for a driver to present (§6,
// "Result export" — explicitly a presentation concern, not part of the
// core). It reproduces the original frontend's two export shapes:
// report_live's per-match live print, and report_dict's merged
// name/meta/pattern/matches JSON objects, here via encoding/json directly
// (mirroring the teacher's own core/message codec, a thin json.Marshal
// wrapper with no third-party codec behind it).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dewolf-research/rikai-frontend/internal/matcher"
)

// RuleResult pairs a rule's identity with the matches found for it.
type RuleResult struct {
	Name    string
	Meta    map[string]string
	Pattern string
	Matches []matcher.Match
}

// jsonResult is RuleResult's wire shape: matches render as plain integer
// tuples, not the named Match type.
type jsonResult struct {
	Name    string            `json:"name"`
	Meta    map[string]string `json:"meta"`
	Pattern string            `json:"pattern"`
	Matches [][]int64         `json:"matches"`
}

// WriteText writes one line per result, mirroring report_live's
// `"{name} matched at {lines}"` live output.
func WriteText(w io.Writer, results []RuleResult) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s matched at %s\n", r.Name, formatMatches(r.Matches)); err != nil {
			return err
		}
	}
	return nil
}

func formatMatches(matches []matcher.Match) string {
	tuples := make([][]int64, len(matches))
	for i, m := range matches {
		tuples[i] = []int64(m)
	}
	return fmt.Sprintf("%v", tuples)
}

// WriteJSON writes results as a JSON array of
// { name, meta, pattern, matches } objects, mirroring report_dict.
func WriteJSON(w io.Writer, results []RuleResult) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		matches := make([][]int64, len(r.Matches))
		for j, m := range r.Matches {
			matches[j] = []int64(m)
		}
		out[i] = jsonResult{Name: r.Name, Meta: r.Meta, Pattern: r.Pattern, Matches: matches}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
