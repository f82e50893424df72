package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/smv/internal/config"
	"github.com/jorge-barreto/smv/internal/docs"
	"github.com/jorge-barreto/smv/internal/helper"
	"github.com/jorge-barreto/smv/internal/journal"
	"github.com/jorge-barreto/smv/internal/match"
	"github.com/jorge-barreto/smv/internal/mover"
	"github.com/jorge-barreto/smv/internal/pattern"
	"github.com/jorge-barreto/smv/internal/runner"
	"github.com/jorge-barreto/smv/internal/scaffold"
	"github.com/jorge-barreto/smv/internal/ux"
)

const version = "0.9"

// exitStatus is set by actions that finish with a status other than 0 or 1.
var exitStatus int

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		if exitStatus == 0 {
			exitStatus = 1
		}
	}
	os.Exit(exitStatus)
}

func newApp() *cli.Command {
	// -v belongs to --verbose.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}

	return &cli.Command{
		Name:        "smv",
		Usage:       "mv with helpers",
		Version:     version,
		ArgsUsage:   "SOURCE_PATTERN DESTINATION_PATTERN",
		Description: "Run 'smv docs' for documentation on destination patterns, helpers, and config.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "delimiter", Aliases: []string{"d"}, Usage: "delimiter character of the DESTINATION_PATTERN", Value: config.DefaultDelimiter},
			&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "perform a trial run with no changes made"},
			&cli.StringFlag{Name: "helper", Aliases: []string{"H"}, Usage: "helper name and arguments, run once per file"},
			&cli.IntFlag{Name: "helper-timeout", Usage: "kill a helper after this many seconds (0 = never)"},
			&cli.BoolFlag{Name: "ignore-case", Aliases: []string{"i"}, Usage: "case insensitive match for the SOURCE_PATTERN"},
			&cli.BoolFlag{Name: "make-path", Aliases: []string{"p"}, Usage: "create missing destination directories"},
			&cli.StringFlag{Name: "mv-flags", Aliases: []string{"m"}, Usage: "extra flags for mv"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no output"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every step to stderr"},
			&cli.StringFlag{Name: "on-error", Usage: "what to do after a bad pattern: abort or skip"},
			&cli.StringFlag{Name: "journal", Usage: "record renames to this file for 'smv undo'"},
			&cli.StringFlag{Name: "config", Usage: "config file (default " + config.DefaultPath + " if present)"},
		},
		Commands: []*cli.Command{
			initCmd(),
			undoCmd(),
			docsCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected SOURCE_PATTERN and DESTINATION_PATTERN, got %d argument(s)", cmd.Args().Len())
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			exitStatus, err = rename(ctx, afero.NewOsFs(), cfg, cmd.Args().Get(0), cmd.Args().Get(1))
			return err
		},
	}
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path, optional := config.DefaultPath, true
	if cmd.IsSet("config") {
		path, optional = cmd.String("config"), false
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cmd.IsSet("delimiter") {
		cfg.Delimiter = cmd.String("delimiter")
	}
	if cmd.IsSet("helper") {
		cfg.Helper = cmd.String("helper")
	}
	if cmd.IsSet("helper-timeout") {
		cfg.HelperTimeout = int(cmd.Int("helper-timeout"))
	}
	if cmd.IsSet("mv-flags") {
		cfg.MvFlags = cmd.String("mv-flags")
	}
	if cmd.IsSet("on-error") {
		cfg.OnError = cmd.String("on-error")
	}
	if cmd.IsSet("journal") {
		cfg.Journal = cmd.String("journal")
	}
	cfg.MakePath = cfg.MakePath || cmd.Bool("make-path")
	cfg.IgnoreCase = cfg.IgnoreCase || cmd.Bool("ignore-case")
	cfg.DryRun = cmd.Bool("dry-run")
	cfg.Quiet = cmd.Bool("quiet")
	cfg.Verbose = cmd.Bool("verbose")

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// rename runs one batch and returns the process exit status.
func rename(ctx context.Context, fsys afero.Fs, cfg *config.Config, source, dest string) (int, error) {
	ux.Configure(os.Stdout, cfg.Quiet, isatty.IsTerminal(os.Stdout.Fd()))
	ctx = ux.WithLogger(ctx, os.Stderr, cfg.Verbose)
	log := zerolog.Ctx(ctx)
	log.Debug().
		Str("version", version).
		Str("source", source).
		Str("dest", dest).
		Interface("config", cfg).
		Msg("starting")

	tmpl, err := pattern.Compile(dest, cfg.DelimiterRune())
	if err != nil {
		return runner.ExitBadPattern, err
	}
	log.Debug().
		Str("delimiter", string(tmpl.Delimiter())).
		Strs("tokens", tmpl.Tokens()).
		Msg("compiled destination")

	if !cfg.DryRun || cfg.Helper != "" {
		if err := helper.Preflight(cfg.Helper); err != nil {
			return runner.ExitNotFound, err
		}
	}

	sources, err := match.Discover(fsys, source, cfg.IgnoreCase)
	if err != nil {
		if errors.Is(err, match.ErrNoMatch) {
			return runner.ExitNotFound, fmt.Errorf("%s: %w", source, err)
		}
		return runner.ExitNotFound, err
	}
	log.Debug().Int("count", len(sources)).Msg("matched")

	r := &runner.Runner{
		Config:   cfg,
		Template: tmpl,
		Mover:    &mover.ShellMover{Flags: cfg.MvFlags},
		Fs:       fsys,
	}
	if cfg.Helper != "" {
		r.Helper = &helper.Command{
			Line:      cfg.Helper,
			Timeout:   time.Duration(cfg.HelperTimeout) * time.Second,
			MaxOutput: cfg.MaxHelperOutput,
		}
	}
	if cfg.Journal != "" && !cfg.DryRun {
		r.Journal = journal.New(source, dest)
		r.JournalPath = cfg.Journal
	}

	rep := r.Run(ctx, sources)
	if len(sources) > 1 || rep.Failed() > 0 {
		ux.Summary(rep.Done(), rep.Failed(), len(sources), cfg.DryRun)
	}
	if rep.Err != nil {
		log.Debug().Err(rep.Err).Msg("finished with errors")
	}
	return rep.ExitCode(), nil
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an example " + config.DefaultPath + " in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			path, err := scaffold.Init(afero.NewOsFs(), dir)
			if err != nil {
				return err
			}
			scaffold.PrintNextSteps(path)
			return nil
		},
	}
}

func undoCmd() *cli.Command {
	return &cli.Command{
		Name:      "undo",
		Usage:     "Move the files of a journaled run back",
		ArgsUsage: "<journal>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("journal argument is required")
			}
			ctx = ux.WithLogger(ctx, os.Stderr, cmd.Bool("verbose"))
			fsys := afero.NewOsFs()

			j, err := journal.Load(fsys, path)
			if err != nil {
				return fmt.Errorf("loading journal: %w", err)
			}
			zerolog.Ctx(ctx).Debug().Str("run", j.RunID).Int("entries", j.Len()).Msg("loaded journal")
			if j.Len() == 0 {
				ux.Undone(j.RunID, 0)
				return nil
			}
			if err := helper.Preflight(""); err != nil {
				return err
			}

			n, undoErr := journal.Undo(ctx, &mover.ShellMover{}, j)
			if err := j.Save(fsys, path); err != nil {
				return fmt.Errorf("saving journal: %w", err)
			}
			ux.Undone(j.RunID, n)
			if undoErr != nil {
				exitStatus = runner.ExitRenameFailed
				return undoErr
			}
			return nil
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'smv docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
