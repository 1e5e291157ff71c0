package types_test

import (
	"testing"

	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNewMatchContext(t *testing.T) {
	mc := types.NewMatchContext("/a/b/report.pdf")
	assert.Equal(t, "/a/b/report.pdf", mc.Path)
	assert.Equal(t, "report.pdf", mc.ShortName)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "created", types.EventCreated.String())
	assert.Equal(t, "closed-write", types.EventClosedWrite.String())
	assert.Equal(t, "moved-in", types.EventMovedIn.String())
	assert.Equal(t, "removed", types.EventRemoved.String())
	assert.Equal(t, "other", types.EventOther.String())
}

func TestRulePredicates(t *testing.T) {
	assert.False(t, types.Rule{Name: "all", Command: "true"}.HasPredicates())
	assert.True(t, types.Rule{Suffix: ".pdf"}.HasPredicates())
	assert.True(t, types.Rule{Pattern: `^scan_\d+`}.HasPredicates())
}

func TestWatchRootAllRules(t *testing.T) {
	assert.True(t, types.WatchRoot{Path: "/watch"}.AllRules())
	assert.False(t, types.WatchRoot{Path: "/watch", Rules: []string{"print"}}.AllRules())
}
