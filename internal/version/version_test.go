package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "9.9.9"
	assert.Contains(t, String(), "goframe v9.9.9")
	assert.Contains(t, String(), GitCommit)
}
