package ux

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	quiet  bool
	colors = true
)

// Configure sets the destination and verbosity of all ux output.
func Configure(w io.Writer, beQuiet, useColor bool) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	quiet = beQuiet
	colors = useColor
}

func printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	fmt.Fprintf(out, format, args...)
}

func c(code string) string {
	if !colors {
		return ""
	}
	return code
}

// Rename prints a completed (or, on a dry run, planned) rename.
func Rename(from, to string, dryRun bool) {
	if dryRun {
		printf("%s%s >> %s%s %s(dry run)%s\n", c(Dim), from, to, c(Reset), c(Yellow), c(Reset))
		return
	}
	printf("%s >> %s%s%s\n", from, c(Green), to, c(Reset))
}

// Fail prints a per-file failure.
func Fail(path, kind string, err error) {
	printf("%s✗ %s (%s): %v%s\n", c(Red), path, kind, err, c(Reset))
}

// Aborted prints the number of files left untouched after an abort.
func Aborted(remaining int) {
	printf("%sAborted: %d file(s) not processed%s\n", c(Yellow), remaining, c(Reset))
}

// Summary prints the final tally of a run.
func Summary(renamed, failed, total int, dryRun bool) {
	verb := "renamed"
	if dryRun {
		verb = "planned"
	}
	color := Green
	if failed > 0 {
		color = Yellow
	}
	printf("\n%s%s%d/%d %s, %d failed%s\n", c(Bold), c(color), renamed, total, verb, failed, c(Reset))
}

// Undone prints the result of an undo.
func Undone(runID string, restored int) {
	printf("%s↺ Run %s: %d file(s) restored%s\n", c(Cyan), runID, restored, c(Reset))
}
