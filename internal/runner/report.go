package runner

import (
	"errors"

	"github.com/jorge-barreto/smv/internal/match"
	"github.com/jorge-barreto/smv/internal/pattern"
)

// Status is the per-file outcome of a run.
type Status string

const (
	StatusRenamed      Status = "renamed"
	StatusPlanned      Status = "planned" // dry run
	StatusHelperFailed Status = "helper-failed"
	StatusBadPattern   Status = "bad-pattern"
	StatusRenameFailed Status = "rename-failed"
	StatusSkipped      Status = "skipped" // batch stopped before this file
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitNotFound     = 1
	ExitHelperFailed = 2
	ExitBadPattern   = 3
	ExitRenameFailed = 4
	ExitInterrupted  = 130
)

// Outcome is the result for one source file.
type Outcome struct {
	Source match.Source
	Dest   string
	Status Status
	Err    error
}

func (o Outcome) fail(s Status, err error) Outcome {
	o.Status = s
	o.Err = err
	return o
}

// Report collects the outcomes of a run.
type Report struct {
	Outcomes    []Outcome
	DryRun      bool
	Interrupted bool
	Err         error // every per-file error, combined with multierr
}

func (r *Report) skipRest(rest []match.Source) {
	for _, src := range rest {
		r.Outcomes = append(r.Outcomes, Outcome{Source: src, Status: StatusSkipped})
	}
}

// Count returns the number of outcomes with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Done returns the number of files renamed, or planned on a dry run.
func (r *Report) Done() int {
	return r.Count(StatusRenamed) + r.Count(StatusPlanned)
}

// Failed returns the number of files that failed.
func (r *Report) Failed() int {
	return r.Count(StatusHelperFailed) + r.Count(StatusBadPattern) + r.Count(StatusRenameFailed)
}

// ExitCode maps the report to a process exit status. A bad pattern outranks
// a failed rename, which outranks a failed helper.
func (r *Report) ExitCode() int {
	switch {
	case r.Interrupted:
		return ExitInterrupted
	case len(r.Outcomes) == 0:
		return ExitNotFound
	case r.Count(StatusBadPattern) > 0:
		return ExitBadPattern
	case r.Count(StatusRenameFailed) > 0:
		return ExitRenameFailed
	case r.Count(StatusHelperFailed) > 0:
		return ExitHelperFailed
	}
	return ExitOK
}

// IsBadPattern reports whether err came from filling a template.
func IsBadPattern(err error) bool {
	return errors.Is(err, pattern.ErrBadPattern)
}
