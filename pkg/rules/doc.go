// Package rules evaluates ready files against the configured rule predicates.
//
// # Predicates
//
// A rule may set any combination of three predicates, all applied to the
// short (base) file name and combined with AND:
//
//   - ends_with   - the name must end with the given text (exact, case sensitive)
//   - starts_with - the name must start with the given text
//   - filter      - a regular expression that must match anywhere in the name
//
// An unset predicate places no constraint. A rule with no predicates matches
// every file.
//
// # Evaluation
//
// Every rule is evaluated independently and every matching rule fires; there
// is no first-match-wins. A filter that does not compile never matches and is
// reported each time the rule is evaluated, without affecting other rules.
//
//	[rules.print]
//	ends_with = ".pdf"
//	cmd = "lpr"
//
//	[rules.archive]
//	filter = "^scan_[0-9]+"
//	cmd = "cp"
//	args = ["{filename}", "/srv/archive/"]
package rules
