// Package errors routes user-facing feedback to the CLI or the TUI.
package errors

import (
	"fmt"
	"sync"

	"github.com/cristianoliveira/portal-notify/internal/transport"
)

// ErrorHandler receives user-facing messages.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the printing surface a CLIHandler writes to.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput. Concurrent callers are
// serialized so lines never interleave.
type CLIHandler struct {
	out ColorOutput
	mu  sync.Mutex
}

// NewCLIHandler creates a CLIHandler.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Success(msg)
}

// ReportLocalMutation reports a read-state change that was applied locally.
// A backend failure becomes a warning, never an error: the local change
// stands either way.
func ReportLocalMutation(h ErrorHandler, success string, remoteErr error) {
	h.Success(success)
	if remoteErr != nil {
		h.Warning(fmt.Sprintf("backend did not confirm the change: %s", Describe(remoteErr)))
	}
}

// Describe turns an error into a short user-facing sentence.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case transport.IsAuthError(err):
		return "not authorized; run `portal-notify token set` or check token_source"
	case transport.IsNotFound(err):
		return "notification not found on the server"
	default:
		return err.Error()
	}
}
