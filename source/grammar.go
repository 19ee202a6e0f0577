// Package source loads concrete syntax trees produced outside Go: a dump
// holds a grammar (rule names and their trivia) and the raw node forest.
// Rules of a loaded grammar satisfy cstpack.Rule, so dumps can be packed
// with the same combinators as a compiled grammar.
package source

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// AnyRule is the trivia key applying to rules without their own entry.
const AnyRule = "*"

// Grammar names the trivia of each rule. Rule names are free strings.
type Grammar struct {
	Trivia map[string][]string `json:"trivia" yaml:"trivia"`
}

// Rule is a rule of a dynamic grammar. Two rules are equal when they carry
// the same name and belong to the same grammar.
type Rule struct {
	name    string
	grammar *Grammar
}

// Rule returns the rule called name.
func (g *Grammar) Rule(name string) Rule { return Rule{name: name, grammar: g} }

// Rules returns every rule named in the trivia table, sorted by name.
func (g *Grammar) Rules() []Rule {
	seen := map[string]bool{}
	for name, trivia := range g.Trivia {
		if name != AnyRule {
			seen[name] = true
		}
		for _, t := range trivia {
			seen[t] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		out = append(out, g.Rule(name))
	}
	return out
}

func (r Rule) String() string { return r.name }

// Trivia returns the rules elided under r: its own entry, or the AnyRule
// entry when r has none.
func (r Rule) Trivia() []Rule {
	if r.grammar == nil {
		return nil
	}
	names, ok := r.grammar.Trivia[r.name]
	if !ok {
		names = r.grammar.Trivia[AnyRule]
	}
	out := make([]Rule, 0, len(names))
	for _, n := range names {
		out = append(out, r.grammar.Rule(n))
	}
	return out
}

// LoadGrammar reads a YAML grammar file of the form
//
//	trivia:
//	  "*": [ws]
//	  list: [ws, comma]
func LoadGrammar(path string) (*Grammar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	var g Grammar
	if err := yaml.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("decode grammar %s: %w", path, err)
	}
	if g.Trivia == nil {
		g.Trivia = map[string][]string{}
	}
	return &g, nil
}
