package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("assembled %d triplets", 144)
	Info("solved %s", "dead")
	Warn("residual %g", 1e-3)
	Section("Solve")

	assert.Equal(t,
		"[DEBUG] assembled 144 triplets\n[INFO] solved dead\n[WARN] residual 0.001\n\n=== Solve ===\n",
		buf.String())
}

func TestLevels_WhenQuiet(t *testing.T) {
	buf := capture(t, false)

	Debug("x")
	Info("x")
	Warn("x")
	Section("x")

	assert.Zero(t, buf.Len())
}
