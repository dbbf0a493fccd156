package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/transport"
	"github.com/stretchr/testify/assert"
)

type recordingOutput struct {
	lines []string
}

func (r *recordingOutput) Error(msgs ...string)   { r.add("error", msgs) }
func (r *recordingOutput) Warning(msgs ...string) { r.add("warning", msgs) }
func (r *recordingOutput) Info(msgs ...string)    { r.add("info", msgs) }
func (r *recordingOutput) Success(msgs ...string) { r.add("success", msgs) }

func (r *recordingOutput) add(kind string, msgs []string) {
	for _, m := range msgs {
		r.lines = append(r.lines, kind+": "+m)
	}
}

func TestCLIHandlerForwards(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)
	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")
	assert.Equal(t, []string{"error: e", "warning: w", "info: i", "success: s"}, out.lines)
}

func TestReportLocalMutation(t *testing.T) {
	out := &recordingOutput{}
	ReportLocalMutation(NewCLIHandler(out), "All notifications marked as read", nil)
	assert.Equal(t, []string{"success: All notifications marked as read"}, out.lines)

	out = &recordingOutput{}
	ReportLocalMutation(NewCLIHandler(out), "Marked n1 as read", stderrors.New("connection refused"))
	assert.Equal(t, []string{
		"success: Marked n1 as read",
		"warning: backend did not confirm the change: connection refused",
	}, out.lines)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Contains(t, Describe(&transport.Error{Op: "x", StatusCode: http.StatusUnauthorized}), "not authorized")
	assert.Equal(t, "notification not found on the server", Describe(&transport.Error{Op: "x", StatusCode: http.StatusNotFound}))
	assert.Equal(t, "boom", Describe(stderrors.New("boom")))
}

func TestTUIHandlerExpiry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewTUIHandler(5 * time.Second)
	h.now = func() time.Time { return clock }

	_, ok := h.Latest()
	assert.False(t, ok)

	h.Warning("offline")
	msg, ok := h.Latest()
	assert.True(t, ok)
	assert.Equal(t, "offline", msg.Text)
	assert.Equal(t, MessageTypeWarning, msg.Type)

	clock = clock.Add(5 * time.Second)
	_, ok = h.Latest()
	assert.False(t, ok)

	h.Success("done")
	h.Clear()
	_, ok = h.Latest()
	assert.False(t, ok)
}
