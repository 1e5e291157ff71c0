package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "1.2.0", "abc123", "2024-05-01"
	assert.Equal(t, "scanwatch 1.2.0 (commit abc123, built 2024-05-01)", String())
}
