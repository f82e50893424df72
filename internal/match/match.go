package match

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jorge-barreto/smv/internal/pattern"
)

// ErrNoMatch is returned when the source pattern matched nothing.
var ErrNoMatch = errors.New("no files match the source pattern")

// Source is one file selected by the source pattern.
type Source struct {
	Path  string // path as passed to the helper and to mv
	Name  string // entry name, extension included
	Base  string // name without extension
	Ext   string // extension with its leading dot, empty when none
	IsDir bool
}

// FileContext returns the values used for the 0 and $ selectors.
func (s Source) FileContext() pattern.FileContext {
	return pattern.FileContext{Name: s.Base, Ext: s.Ext}
}

// Discover expands source into the files it selects. When source names an
// existing directory that directory is the only match, with its path as the
// name and no extension. Otherwise the last path element is a glob matched
// against the entries of the directory that precedes it, in name order.
// The ksh extglob forms @(a|b) and ?(a|b) are accepted anywhere, !(pat)
// only as the whole glob.
func Discover(fsys afero.Fs, source string, ignoreCase bool) ([]Source, error) {
	if info, err := fsys.Stat(source); err == nil && info.IsDir() {
		return []Source{{Path: source, Name: source, Base: source, IsDir: true}}, nil
	}

	dir, glob := filepath.Split(source)
	if glob == "" {
		return nil, fmt.Errorf("source pattern %q has no file part", source)
	}
	if ignoreCase {
		glob = strings.ToLower(glob)
	}
	matcher, err := compileGlob(glob)
	if err != nil {
		return nil, err
	}
	listDir := dir
	if listDir == "" {
		listDir = "."
	}

	entries, err := afero.ReadDir(fsys, listDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", listDir, err)
	}

	var out []Source
	for _, e := range entries {
		name := e.Name()
		candidate := name
		if ignoreCase {
			candidate = strings.ToLower(name)
		}
		ok, err := matcher.Match(candidate)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", name, err)
		}
		if !ok {
			continue
		}
		base, ext := SplitName(name)
		out = append(out, Source{
			Path:  dir + name,
			Name:  name,
			Base:  base,
			Ext:   ext,
			IsDir: e.IsDir(),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoMatch
	}
	return out, nil
}

// SplitName splits a file name at its last dot. A leading dot does not start
// an extension, so ".bashrc" has none.
func SplitName(name string) (base, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}
