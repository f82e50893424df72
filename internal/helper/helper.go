package helper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// Result holds the outcome of one helper run.
type Result struct {
	ExitCode  int
	Output    string // first line of stdout, line break stripped
	Truncated bool   // output hit the byte limit
}

// OK reports whether the helper exited successfully.
func (r *Result) OK() bool {
	return r != nil && r.ExitCode == 0
}

// Runner runs the helper for one file. Tests can substitute a mock.
type Runner interface {
	Run(ctx context.Context, path string) (*Result, error)
}

// Command runs a helper command line through bash with the file path
// appended as a single quoted argument.
type Command struct {
	Line      string        // helper name and arguments
	Timeout   time.Duration // 0 means no timeout
	MaxOutput int           // bytes kept from stdout, <= 0 means unlimited
	Stderr    io.Writer     // defaults to os.Stderr
}

// CommandLine returns the shell command executed for path.
func (c *Command) CommandLine(path string) string {
	return c.Line + " " + shellquote.Join(path)
}

// Run executes the helper for path.
func (c *Command) Run(ctx context.Context, path string) (*Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	line := c.CommandLine(path)
	zerolog.Ctx(ctx).Debug().Str("cmd", line).Msg("running helper")

	cmd := exec.CommandContext(ctx, "bash", "-c", line)
	// Grandchildren may hold stdout open after bash is killed.
	cmd.WaitDelay = time.Second
	var captured bytes.Buffer
	cmd.Stdout = &limitedWriter{buf: &captured, limit: c.MaxOutput}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	code, err := exitCode(ctx, cmd.Run())
	if err != nil {
		return nil, fmt.Errorf("running helper %q: %w", c.Line, err)
	}

	out, truncated := firstLine(captured.String(), c.MaxOutput)
	res := &Result{ExitCode: code, Output: out, Truncated: truncated}
	zerolog.Ctx(ctx).Debug().
		Int("status", code).
		Str("output", res.Output).
		Int("bytes", len(res.Output)).
		Bool("truncated", truncated).
		Msg("helper finished")
	return res, nil
}

// firstLine keeps the text up to the first line break and cuts it to max
// bytes on a UTF-8 boundary.
func firstLine(s string, max int) (string, bool) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "\r")
	if max <= 0 || len(s) <= max {
		return s, false
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}

// limitedWriter keeps at most limit+1 bytes, one past the limit so the
// caller can tell the output was cut, and reports full writes so the child
// never sees a broken pipe.
type limitedWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.limit <= 0 {
		return l.buf.Write(p)
	}
	room := l.limit + 1 - l.buf.Len()
	if room <= 0 {
		return len(p), nil
	}
	keep := p
	if len(keep) > room {
		keep = keep[:room]
	}
	l.buf.Write(keep)
	return len(p), nil
}
