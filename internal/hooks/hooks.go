// Package hooks runs user scripts when notification events happen.
//
// Scripts live in <dir>/<hook point>/ and run in name order. Only
// executable regular files are considered.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/portal-notify/internal/domain"
	"github.com/cristianoliveira/portal-notify/internal/logging"
)

// Hook points.
const (
	// PointNotificationReceived fires once per newly seen unread notification.
	PointNotificationReceived = "notification-received"
)

// FailureMode decides what a failing script does to the remaining ones.
type FailureMode string

const (
	FailureWarn   FailureMode = "warn"
	FailureIgnore FailureMode = "ignore"
	FailureAbort  FailureMode = "abort"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 10 * time.Second

// killGrace is how long Run waits for output after a script is killed.
const killGrace = 500 * time.Millisecond

// Options configures a Runner.
type Options struct {
	Dir         string
	FailureMode FailureMode
	Timeout     time.Duration
	Logger      logging.Logger
}

// Runner executes hook scripts. The zero value is not usable; use New.
type Runner struct {
	dir         string
	failureMode FailureMode
	timeout     time.Duration
	log         logging.Logger
}

// New creates a Runner. An empty Dir disables hooks.
func New(opts Options) *Runner {
	r := &Runner{
		dir:         opts.Dir,
		failureMode: opts.FailureMode,
		timeout:     opts.Timeout,
		log:         opts.Logger,
	}
	switch r.failureMode {
	case FailureWarn, FailureIgnore, FailureAbort:
	default:
		r.failureMode = FailureWarn
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.log == nil {
		r.log = logging.Nop()
	}
	return r
}

// Scripts lists the executable scripts for point, sorted by name. A missing
// directory yields none.
func (r *Runner) Scripts(point string) []string {
	if r.dir == "" {
		return nil
	}
	dir := filepath.Join(r.dir, point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts
}

// Run executes every script for point with env added to the process
// environment. With FailureAbort the first failure stops the run and is
// returned; otherwise failures are logged and Run returns nil.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	scripts := r.Scripts(point)
	if len(scripts) == 0 {
		return nil
	}

	environ := os.Environ()
	environ = append(environ,
		"HOOK_POINT="+point,
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		environ = append(environ, "PORTAL_NOTIFY_BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+env[k])
	}

	for _, script := range scripts {
		err := r.runOne(ctx, script, environ)
		if err == nil {
			continue
		}
		switch r.failureMode {
		case FailureAbort:
			return err
		case FailureWarn:
			r.log.Warn("hook failed", "point", point, "script", filepath.Base(script), "error", err)
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, script string, environ []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	// Children that outlive the script would otherwise hold the output pipe open.
	cmd.WaitDelay = killGrace
	killProcessGroup(cmd)
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("hook %s timed out after %s", filepath.Base(script), r.timeout)
	}
	if err != nil {
		return fmt.Errorf("hook %s failed: %w, output: %s", filepath.Base(script), err, strings.TrimSpace(string(output)))
	}
	r.log.Debug("hook completed", "script", filepath.Base(script), "duration", duration.String())
	return nil
}

// NotificationEnv describes n to a script.
func NotificationEnv(n domain.Notification) map[string]string {
	return map[string]string{
		"NOTIFICATION_ID":         n.ID,
		"NOTIFICATION_TYPE":       n.Type.String(),
		"NOTIFICATION_DEPARTMENT": n.Department.String(),
		"NOTIFICATION_PRIORITY":   n.Priority.String(),
		"NOTIFICATION_TITLE":      n.Title,
		"NOTIFICATION_MESSAGE":    n.Message,
		"NOTIFICATION_READ":       strconv.FormatBool(n.Read),
		"NOTIFICATION_CREATED_AT": n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
