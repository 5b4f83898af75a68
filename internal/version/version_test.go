package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuild(t *testing.T, commit, date string) {
	t.Helper()
	prevCommit, prevDate := Commit, BuildDate
	Commit, BuildDate = commit, date
	t.Cleanup(func() { Commit, BuildDate = prevCommit, prevDate })
}

func TestGetVersion(t *testing.T) {
	setBuild(t, "", "")
	assert.Equal(t, Version, GetVersion())

	setBuild(t, "0123456789abcdef", "")
	assert.Equal(t, Version+"+0123456", GetVersion())

	setBuild(t, "abc", "")
	assert.Equal(t, Version+"+abc", GetVersion())
}

func TestGetVersionInfo(t *testing.T) {
	setBuild(t, "0123456789abcdef", "2026-10-16")

	lines := strings.Split(GetVersionInfo("SubGHz Trim"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "SubGHz Trim "+Version+"+0123456 (built 2026-10-16)", lines[0])
	assert.Contains(t, lines[2], runtime.GOOS+"/"+runtime.GOARCH)
}

func TestGetVersionInfoWithoutBuildDate(t *testing.T) {
	setBuild(t, "", "")
	assert.True(t, strings.HasPrefix(GetVersionInfo("SubGHz Reader"), "SubGHz Reader "+Version+"\n"))
}
