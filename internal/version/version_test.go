package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyBuildInfo(t *testing.T) {
	orig := Revision
	t.Cleanup(func() { Revision = orig })

	Revision = "HEAD"
	applyBuildInfo(map[string]string{"vcs.revision": "abc123", "vcs.modified": "true"})
	assert.Equal(t, "abc123-dirty", Revision)

	// an ldflags value is never overridden
	Revision = "release"
	applyBuildInfo(map[string]string{"vcs.revision": "def456"})
	assert.Equal(t, "release", Revision)
}

func TestShort(t *testing.T) {
	orig := Revision
	t.Cleanup(func() { Revision = orig })

	Revision = "abc123"
	assert.Equal(t, "1.0.0 (abc123)", Short())
	assert.Contains(t, Detailed(), "1.0.0 (abc123; go")
}
