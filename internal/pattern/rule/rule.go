// Package rule loads Rule definitions from their YAML envelope (§4.5,
// "Rule loading") and parses the embedded pattern text via the grammar
// package.
package rule

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dewolf-research/rikai-frontend/internal/grammar"
	"github.com/dewolf-research/rikai-frontend/internal/pattern/behavior"
)

// Rule pairs a named behavior pattern with free-form metadata (§3).
type Rule struct {
	Name    string
	Meta    map[string]string
	Pattern behavior.Behavior
}

// MalformedRule reports a rule file whose YAML envelope cannot be decoded
// or lacks its required `pattern` or `name` key.
type MalformedRule struct {
	Source string
	Reason string
}

func (e *MalformedRule) Error() string {
	return fmt.Sprintf("malformed rule %q: %s", e.Source, e.Reason)
}

// envelope is the YAML document shape a rule file supplies: `name` and
// `pattern` are required, `meta` and `definitions` are optional.
type envelope struct {
	Name        string            `yaml:"name"`
	Meta        map[string]string `yaml:"meta"`
	Pattern     string            `yaml:"pattern"`
	Definitions map[string]int64  `yaml:"definitions"`
}

// Parse decodes a rule file's YAML contents and parses its pattern.
// source identifies the document for error reporting (typically its file
// path); it plays no role in the parsed result.
func Parse(source string, contents []byte) (Rule, error) {
	var env envelope
	if err := yaml.Unmarshal(contents, &env); err != nil {
		return Rule{}, &MalformedRule{Source: source, Reason: err.Error()}
	}
	if env.Pattern == "" {
		return Rule{}, &MalformedRule{Source: source, Reason: "missing required \"pattern\" key"}
	}
	if env.Name == "" {
		return Rule{}, &MalformedRule{Source: source, Reason: "missing required \"name\" key"}
	}

	pattern, err := grammar.ParsePattern(env.Pattern, env.Definitions)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", source, err)
	}

	return Rule{Name: env.Name, Meta: env.Meta, Pattern: pattern}, nil
}
