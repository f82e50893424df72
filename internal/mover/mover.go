package mover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Mover performs one rename. Tests can substitute a mock.
type Mover interface {
	Move(ctx context.Context, from, to string) error
}

// ShellMover renames through the system mv so that user supplied mv flags
// such as -n or -b keep their usual meaning.
type ShellMover struct {
	Flags string // extra mv flags, shell quoted
}

// Args returns the argv passed to mv.
func (m *ShellMover) Args(from, to string) ([]string, error) {
	flags, err := shellquote.Split(m.Flags)
	if err != nil {
		return nil, fmt.Errorf("parsing mv flags %q: %w", m.Flags, err)
	}
	args := append(flags, "--", from, to)
	return args, nil
}

// Move runs mv for one file and reports a non-zero exit as an error.
func (m *ShellMover) Move(ctx context.Context, from, to string) error {
	args, err := m.Args(from, to)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Strs("args", args).Msg("running mv")

	cmd := exec.CommandContext(ctx, "mv", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("mv exited %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("running mv: %w", err)
	}
	return nil
}

// FsMover renames within an afero filesystem. It ignores mv flags.
type FsMover struct {
	Fs afero.Fs
}

func (m *FsMover) Move(ctx context.Context, from, to string) error {
	if err := m.Fs.Rename(from, to); err != nil {
		return fmt.Errorf("renaming %s: %w", from, err)
	}
	return nil
}

// Plan turns a filled destination into the final path. A destination that
// is an existing directory receives the source's base name. With makePath
// the destination's parent directories are created unless dryRun is set.
func Plan(fsys afero.Fs, from, to string, makePath, dryRun bool) (string, error) {
	if to == "" {
		return "", fmt.Errorf("empty destination for %s", from)
	}
	if makePath && !dryRun {
		if dir := filepath.Dir(to); dir != "." && dir != string(filepath.Separator) {
			if err := fsys.MkdirAll(dir, os.ModePerm); err != nil {
				return "", fmt.Errorf("creating %s: %w", dir, err)
			}
		}
	}
	if info, err := fsys.Stat(to); err == nil && info.IsDir() {
		base := filepath.Base(from)
		if strings.HasSuffix(to, "/") {
			return to + base, nil
		}
		return to + "/" + base, nil
	}
	return to, nil
}
