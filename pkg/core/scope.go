package core

import (
	"sort"

	"github.com/arthur-debert/scanwatch/pkg/paths"
	"github.com/arthur-debert/scanwatch/pkg/types"
)

// Scope maps watch roots to the rules that apply below them
type Scope struct {
	roots []types.WatchRoot
	rules map[string]types.Rule
	all   []types.Rule
}

// NewScope binds roots to rules. Rule slices are ordered by name.
// A root naming a rule that does not exist simply never fires it.
func NewScope(roots []types.WatchRoot, rules []types.Rule) *Scope {
	s := &Scope{
		roots: roots,
		rules: make(map[string]types.Rule, len(rules)),
	}
	for _, r := range rules {
		s.rules[r.Name] = r
	}
	for _, r := range s.rules {
		s.all = append(s.all, r)
	}
	sortRules(s.all)
	return s
}

// Roots returns the bound roots
func (s *Scope) Roots() []types.WatchRoot {
	return s.roots
}

// Rules returns every known rule in name order
func (s *Scope) Rules() []types.Rule {
	return s.all
}

// RulesFor returns the union of the rule sets of every root containing path,
// in name order. Nested or repeated roots never yield a rule twice.
func (s *Scope) RulesFor(path string) []types.Rule {
	selected := make(map[string]types.Rule)

	for _, root := range s.roots {
		if !paths.IsWithin(root.Path, path) {
			continue
		}
		if root.AllRules() {
			return s.all
		}
		for _, name := range root.Rules {
			if r, ok := s.rules[name]; ok {
				selected[name] = r
			}
		}
	}

	out := make([]types.Rule, 0, len(selected))
	for _, r := range selected {
		out = append(out, r)
	}
	sortRules(out)
	return out
}

func sortRules(rules []types.Rule) {
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })
}
