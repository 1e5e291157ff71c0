package rules

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/rs/zerolog"
)

// Matcher evaluates file names against rule predicates.
// Patterns are compiled once, when the matcher is built.
type Matcher struct {
	patterns map[string]*regexp.Regexp
	invalid  map[string]error
	logger   zerolog.Logger
}

// NewMatcher creates a matcher for the given rules, compiling every filter.
// Filters that fail to compile are reported and the owning rule never matches.
func NewMatcher(rules []types.Rule) *Matcher {
	m := &Matcher{
		patterns: make(map[string]*regexp.Regexp),
		invalid:  make(map[string]error),
		logger:   logging.GetLogger("rules.matcher"),
	}

	for _, rule := range rules {
		if rule.Pattern == "" {
			continue
		}
		re, err := CompilePattern(rule)
		if err != nil {
			m.invalid[rule.Name] = err
			m.logger.Warn().
				Err(err).
				Str("rule", rule.Name).
				Str("filter", rule.Pattern).
				Msg("Invalid filter, rule will never match")
			continue
		}
		m.patterns[rule.Name] = re
	}

	m.logger.Debug().
		Int("ruleCount", len(rules)).
		Int("invalidCount", len(m.invalid)).
		Msg("Matcher ready")

	return m
}

// CompilePattern compiles the rule's filter as an unanchored regular expression
func CompilePattern(rule types.Rule) (*regexp.Regexp, error) {
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		swErr := errors.Wrapf(err, errors.ErrPatternInvalid, "rule %s has an invalid filter", rule.Name).
			WithDetail("rule", rule.Name).
			WithDetail("filter", rule.Pattern)
		return nil, swErr
	}
	return re, nil
}

// InvalidPatterns returns the compile error for every rule whose filter is unusable
func (m *Matcher) InvalidPatterns() map[string]error {
	out := make(map[string]error, len(m.invalid))
	for name, err := range m.invalid {
		out[name] = err
	}
	return out
}

// Evaluate applies all of the rule's predicates to name.
// A non-nil error means the rule has an unusable filter; the result is then false.
func (m *Matcher) Evaluate(rule types.Rule, name string) (bool, error) {
	re, err := m.pattern(rule)
	if err != nil {
		return false, err
	}

	if rule.Suffix != "" && !strings.HasSuffix(name, rule.Suffix) {
		return false, nil
	}
	if rule.Prefix != "" && !strings.HasPrefix(name, rule.Prefix) {
		return false, nil
	}
	if re == nil {
		return true, nil
	}
	return re.MatchString(name), nil
}

// pattern returns the compiled filter of rule, nil when it has none
func (m *Matcher) pattern(rule types.Rule) (*regexp.Regexp, error) {
	if rule.Pattern == "" {
		return nil, nil
	}
	if err, bad := m.invalid[rule.Name]; bad {
		return nil, err
	}
	if re, ok := m.patterns[rule.Name]; ok && re.String() == rule.Pattern {
		return re, nil
	}
	// Rule was not known when the matcher was built
	return CompilePattern(rule)
}

// Match returns every candidate rule whose predicates hold for name, in candidate order
func (m *Matcher) Match(name string, candidates []types.Rule) []types.Rule {
	var matched []types.Rule
	for _, rule := range candidates {
		ok, err := m.Evaluate(rule, name)
		if err != nil {
			m.logger.Warn().
				Err(err).
				Str("rule", rule.Name).
				Str("file", name).
				Msg("Skipping rule with invalid filter")
			continue
		}

		m.logger.Debug().
			Str("rule", rule.Name).
			Str("file", name).
			Bool("matched", ok).
			Msg("Rule evaluated")

		if ok {
			matched = append(matched, rule)
		}
	}
	return matched
}
