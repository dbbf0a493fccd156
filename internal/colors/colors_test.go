package colors

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()
	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

type recordingLogger struct {
	infos, warns, errors, debugs []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.debugs = append(r.debugs, msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.infos = append(r.infos, msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.warns = append(r.warns, msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.errors = append(r.errors, msg) }

func TestError(t *testing.T) {
	output := captureStderr(t, func() { Error("something went wrong") })
	assert.Contains(t, output, "Error:")
	assert.Contains(t, output, "something went wrong")
	assert.Contains(t, output, Red)
}

func TestSuccess(t *testing.T) {
	output := captureStdout(t, func() { Success("operation completed") })
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "operation completed")
	assert.Contains(t, output, Green)
}

func TestWarning(t *testing.T) {
	output := captureStderr(t, func() { Warning("careful") })
	assert.Contains(t, output, "Warning:")
	assert.Contains(t, output, Yellow)
}

func TestInfoAndHint(t *testing.T) {
	assert.Contains(t, captureStdout(t, func() { Info("hello", "world") }), "hello world")
	assert.Contains(t, captureStderr(t, func() { Hint("offline data") }), Dim+"offline data")
}

func TestDebugToggle(t *testing.T) {
	SetDebug(false)
	assert.Empty(t, captureStderr(t, func() { Debug("hidden") }))

	SetDebug(true)
	defer SetDebug(false)
	assert.Contains(t, captureStderr(t, func() { Debug("shown") }), "shown")
}

func TestMessagesMirrorToLogger(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	captureStderr(t, func() {
		Error("e1")
		Warning("w1")
	})
	captureStdout(t, func() {
		Info("i1")
		Success("s1")
	})

	assert.Equal(t, []string{"e1"}, rec.errors)
	assert.Equal(t, []string{"w1"}, rec.warns)
	assert.Equal(t, []string{"i1", "s1"}, rec.infos)
}
