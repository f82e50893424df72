package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/jorge-barreto/smv/internal/config"
	"github.com/jorge-barreto/smv/internal/helper"
	"github.com/jorge-barreto/smv/internal/journal"
	"github.com/jorge-barreto/smv/internal/match"
	"github.com/jorge-barreto/smv/internal/mover"
	"github.com/jorge-barreto/smv/internal/pattern"
	"github.com/jorge-barreto/smv/internal/ux"
)

// Runner renames a batch of sources one at a time.
type Runner struct {
	Config   *config.Config
	Template *pattern.Template
	Helper   helper.Runner // nil when no helper is configured
	Mover    mover.Mover
	Fs       afero.Fs

	Journal     *journal.Journal // optional
	JournalPath string           // saved after every rename when set
}

// Run processes sources in order. Under the abort policy the first bad
// pattern stops the batch; everything after it is reported as skipped.
// The returned Report is never nil.
func (r *Runner) Run(ctx context.Context, sources []match.Source) *Report {
	log := zerolog.Ctx(ctx)
	rep := &Report{DryRun: r.Config.DryRun}

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			rep.Interrupted = true
			rep.Err = multierr.Append(rep.Err, err)
			rep.skipRest(sources[i:])
			break
		}

		log.Debug().Str("path", src.Path).Int("index", i).Msg("processing")
		out := r.process(ctx, src)
		rep.Outcomes = append(rep.Outcomes, out)

		switch out.Status {
		case StatusRenamed, StatusPlanned:
			ux.Rename(src.Path, out.Dest, r.Config.DryRun)
			continue
		}

		ux.Fail(src.Path, string(out.Status), out.Err)
		rep.Err = multierr.Append(rep.Err, fmt.Errorf("%s: %w", src.Path, out.Err))

		if IsBadPattern(out.Err) && r.Config.OnError == config.OnErrorAbort {
			rest := sources[i+1:]
			rep.skipRest(rest)
			if len(rest) > 0 {
				ux.Aborted(len(rest))
			}
			break
		}
	}

	if r.Journal != nil {
		r.finishJournal(ctx, rep)
	}
	return rep
}

// process runs the helper, fills the template and moves one source.
func (r *Runner) process(ctx context.Context, src match.Source) Outcome {
	log := zerolog.Ctx(ctx)
	out := Outcome{Source: src}

	table := pattern.EmptyTable()
	if r.Helper != nil {
		res, err := r.Helper.Run(ctx, src.Path)
		if err == nil && !res.OK() {
			err = fmt.Errorf("%w: exit status %d", ErrHelperFailed, res.ExitCode)
		}
		if err != nil {
			return out.fail(StatusHelperFailed, err)
		}
		if res.Truncated {
			log.Warn().Str("path", src.Path).Int("limit", r.Config.MaxHelperOutput).Msg("helper output truncated")
		}
		table = pattern.NewTable(res.Output, r.Config.MaxVars)
		log.Debug().Str("whole", table.Whole()).Strs("fields", table.Fields()).Msg("variables")
	}

	dest, err := r.Template.Fill(table, src.FileContext())
	if err != nil {
		return out.fail(StatusBadPattern, err)
	}
	log.Debug().Str("template", r.Template.String()).Str("dest", dest).Msg("filled")

	final, err := mover.Plan(r.Fs, src.Path, dest, r.Config.MakePath, r.Config.DryRun)
	if err != nil {
		return out.fail(StatusRenameFailed, err)
	}
	out.Dest = final

	if r.Config.DryRun {
		out.Status = StatusPlanned
		return out
	}
	if err := r.Mover.Move(ctx, src.Path, final); err != nil {
		return out.fail(StatusRenameFailed, err)
	}
	out.Status = StatusRenamed

	if r.Journal != nil {
		r.Journal.Record(src.Path, final)
		if r.JournalPath != "" {
			if err := r.Journal.Save(r.Fs, r.JournalPath); err != nil {
				log.Warn().Err(err).Str("journal", r.JournalPath).Msg("saving journal")
			}
		}
	}
	return out
}

func (r *Runner) finishJournal(ctx context.Context, rep *Report) {
	switch {
	case rep.Interrupted:
		r.Journal.Status = journal.StatusInterrupted
	case rep.Failed() > 0:
		r.Journal.Status = journal.StatusFailed
	default:
		r.Journal.Status = journal.StatusCompleted
	}
	if r.JournalPath == "" || r.Config.DryRun {
		return
	}
	log := zerolog.Ctx(ctx)
	if err := r.Journal.Save(r.Fs, r.JournalPath); err != nil {
		log.Warn().Err(err).Str("journal", r.JournalPath).Msg("saving journal")
		return
	}
	log.Debug().Str("journal", r.JournalPath).Int("entries", r.Journal.Len()).Msg("journal saved")
}

// ErrHelperFailed marks a helper that ran but exited non-zero.
var ErrHelperFailed = errors.New("helper failed")
