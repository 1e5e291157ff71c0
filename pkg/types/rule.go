package types

// Rule is a named predicate+action pair applied to every ready file.
// Empty predicate strings mean "no constraint". Rules are read-only once loaded.
type Rule struct {
	Name string

	// Predicates, combined with AND
	Suffix  string
	Prefix  string
	Pattern string

	// Action
	Command string
	Args    []string
	Message string
	Icon    string

	// Substitution variables for {x}, {y} and {z}
	X string
	Y string
	Z string
}

// HasPredicates reports whether the rule constrains file names at all
func (r Rule) HasPredicates() bool {
	return r.Suffix != "" || r.Prefix != "" || r.Pattern != ""
}

// WatchRoot is a directory subtree under observation.
// An empty Rules list means every configured rule applies below Path.
type WatchRoot struct {
	Name  string
	Path  string
	Rules []string
}

// AllRules reports whether the root is bound to the complete rule set
func (w WatchRoot) AllRules() bool {
	return len(w.Rules) == 0
}
