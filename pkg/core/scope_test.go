// Test Type: Unit Test
// Description: Tests for Scope - binding rules to watch roots

package core_test

import (
	"testing"

	"github.com/arthur-debert/scanwatch/pkg/core"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func ruleNames(rules []types.Rule) []string {
	out := []string{}
	for _, r := range rules {
		out = append(out, r.Name)
	}
	return out
}

func TestScope_RulesFor(t *testing.T) {
	ruleSet := []types.Rule{{Name: "print"}, {Name: "archive"}, {Name: "ocr"}}
	scope := core.NewScope([]types.WatchRoot{
		{Name: "office", Path: "/scans/office", Rules: []string{"print", "ocr"}},
		{Name: "scans", Path: "/scans", Rules: []string{"archive", "print"}},
		{Name: "inbox", Path: "/inbox"},
		{Name: "typo", Path: "/typo", Rules: []string{"missing"}},
	}, ruleSet)

	tests := []struct {
		path string
		want []string
	}{
		{"/scans/office/a.pdf", []string{"archive", "ocr", "print"}},
		{"/scans/home/a.pdf", []string{"archive", "print"}},
		{"/inbox/deep/a.pdf", []string{"archive", "ocr", "print"}},
		{"/scansextra/a.pdf", []string{}},
		{"/typo/a.pdf", []string{}},
		{"/elsewhere/a.pdf", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ruleNames(scope.RulesFor(tt.path)))
		})
	}
}

func TestScope_Rules(t *testing.T) {
	scope := core.NewScope(nil, []types.Rule{{Name: "b"}, {Name: "a"}})
	assert.Equal(t, []string{"a", "b"}, ruleNames(scope.Rules()))
}
