package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/smv/internal/config"
	"github.com/jorge-barreto/smv/internal/helper"
	"github.com/jorge-barreto/smv/internal/journal"
	"github.com/jorge-barreto/smv/internal/match"
	"github.com/jorge-barreto/smv/internal/mover"
	"github.com/jorge-barreto/smv/internal/pattern"
	"github.com/jorge-barreto/smv/internal/ux"
)

func TestMain(m *testing.M) {
	ux.Configure(io.Discard, true, false)
	os.Exit(m.Run())
}

// mockHelper returns canned output per path.
type mockHelper struct {
	mu      sync.Mutex
	calls   []string
	outputs map[string]*helper.Result
	errors  map[string]error
}

func newMockHelper() *mockHelper {
	return &mockHelper{
		outputs: make(map[string]*helper.Result),
		errors:  make(map[string]error),
	}
}

func (m *mockHelper) Run(ctx context.Context, path string) (*helper.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, path)
	m.mu.Unlock()
	if err, ok := m.errors[path]; ok {
		return nil, err
	}
	if res, ok := m.outputs[path]; ok {
		return res, nil
	}
	return &helper.Result{}, nil
}

// recordingMover records moves and fails the ones listed in fail.
type recordingMover struct {
	moves [][2]string
	fail  map[string]bool
}

func (m *recordingMover) Move(ctx context.Context, from, to string) error {
	if m.fail[from] {
		return errors.New("mv exited 1")
	}
	m.moves = append(m.moves, [2]string{from, to})
	return nil
}

func sources(fsys afero.Fs, t *testing.T, glob string) []match.Source {
	t.Helper()
	srcs, err := match.Discover(fsys, glob, false)
	require.NoError(t, err)
	return srcs
}

func newTestRunner(t *testing.T, tmpl string, cfg *config.Config) (*Runner, *recordingMover) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	require.NoError(t, config.Validate(cfg))
	tp, err := pattern.Compile(tmpl, cfg.DelimiterRune())
	require.NoError(t, err)
	mv := &recordingMover{fail: map[string]bool{}}
	return &Runner{
		Config:   cfg,
		Template: tp,
		Mover:    mv,
		Fs:       afero.NewMemMapFs(),
	}, mv
}

func writeFiles(t *testing.T, fsys afero.Fs, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, afero.WriteFile(fsys, n, []byte(n), 0644))
	}
}

func TestRun_NoHelper(t *testing.T) {
	r, mv := newTestRunner(t, "out/%0%.bak", nil)
	writeFiles(t, r.Fs, "in/a.txt", "in/b.txt")

	rep := r.Run(context.Background(), sources(r.Fs, t, "in/*.txt"))

	assert.Equal(t, ExitOK, rep.ExitCode())
	assert.Equal(t, 2, rep.Done())
	assert.NoError(t, rep.Err)
	assert.Equal(t, [][2]string{{"in/a.txt", "out/a.bak"}, {"in/b.txt", "out/b.bak"}}, mv.moves)
}

func TestRun_HelperVariables(t *testing.T) {
	r, mv := newTestRunner(t, "%1%/%2%/%0%_%3,1,3%%$%", nil)
	writeFiles(t, r.Fs, "img/p1.jpg")
	h := newMockHelper()
	h.outputs["img/p1.jpg"] = &helper.Result{Output: "2024 07 holiday"}
	r.Helper = h

	rep := r.Run(context.Background(), sources(r.Fs, t, "img/*.jpg"))

	require.Equal(t, ExitOK, rep.ExitCode())
	assert.Equal(t, [][2]string{{"img/p1.jpg", "2024/07/p1_hol.jpg"}}, mv.moves)
	assert.Equal(t, []string{"img/p1.jpg"}, h.calls)
}

func TestRun_HelperFailedContinues(t *testing.T) {
	r, mv := newTestRunner(t, "%@%%$%", nil)
	writeFiles(t, r.Fs, "d/a.jpg", "d/b.jpg")
	h := newMockHelper()
	h.outputs["d/a.jpg"] = &helper.Result{ExitCode: 1}
	h.outputs["d/b.jpg"] = &helper.Result{Output: "beach"}
	r.Helper = h

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/*.jpg"))

	assert.Equal(t, ExitHelperFailed, rep.ExitCode())
	assert.Equal(t, StatusHelperFailed, rep.Outcomes[0].Status)
	assert.True(t, errors.Is(rep.Outcomes[0].Err, ErrHelperFailed))
	assert.Equal(t, [][2]string{{"d/b.jpg", "beach.jpg"}}, mv.moves)
}

func TestRun_HelperError(t *testing.T) {
	r, _ := newTestRunner(t, "%@%", nil)
	writeFiles(t, r.Fs, "d/a")
	h := newMockHelper()
	h.errors["d/a"] = errors.New("exec: bash not found")
	r.Helper = h

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/a"))
	assert.Equal(t, ExitHelperFailed, rep.ExitCode())
}

func TestRun_BadPatternAborts(t *testing.T) {
	r, mv := newTestRunner(t, "%0,3,1%", nil)
	writeFiles(t, r.Fs, "d/ab.txt", "d/abcd.txt", "d/abcdef.txt")

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/*.txt"))

	assert.Equal(t, ExitBadPattern, rep.ExitCode())
	require.Len(t, rep.Outcomes, 3)
	assert.Equal(t, StatusBadPattern, rep.Outcomes[0].Status)
	assert.True(t, IsBadPattern(rep.Outcomes[0].Err))
	assert.Equal(t, StatusSkipped, rep.Outcomes[1].Status)
	assert.Equal(t, StatusSkipped, rep.Outcomes[2].Status)
	assert.Empty(t, mv.moves)
}

func TestRun_BadPatternSkipPolicy(t *testing.T) {
	r, mv := newTestRunner(t, "%0,3,1%", &config.Config{OnError: config.OnErrorSkip})
	writeFiles(t, r.Fs, "d/ab.txt", "d/abcd.txt")

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/*.txt"))

	assert.Equal(t, ExitBadPattern, rep.ExitCode())
	assert.Equal(t, 1, rep.Failed())
	assert.Equal(t, 1, rep.Done())
	assert.Equal(t, [][2]string{{"d/abcd.txt", "c"}}, mv.moves)
}

func TestRun_RenameFailed(t *testing.T) {
	r, mv := newTestRunner(t, "%0%.new", nil)
	writeFiles(t, r.Fs, "d/a", "d/b")
	mv.fail["d/a"] = true

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/*"))

	assert.Equal(t, ExitRenameFailed, rep.ExitCode())
	assert.Equal(t, StatusRenameFailed, rep.Outcomes[0].Status)
	assert.Equal(t, StatusRenamed, rep.Outcomes[1].Status)
	assert.Error(t, rep.Err)
}

func TestRun_DryRun(t *testing.T) {
	r, mv := newTestRunner(t, "new/dir/%0%", &config.Config{DryRun: true, MakePath: true})
	writeFiles(t, r.Fs, "d/a")

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/a"))

	assert.Equal(t, ExitOK, rep.ExitCode())
	assert.Equal(t, StatusPlanned, rep.Outcomes[0].Status)
	assert.Equal(t, "new/dir/a", rep.Outcomes[0].Dest)
	assert.Empty(t, mv.moves)
	ok, _ := afero.DirExists(r.Fs, "new/dir")
	assert.False(t, ok, "dry run must not create directories")
}

func TestRun_MakePathAndDirTarget(t *testing.T) {
	r, mv := newTestRunner(t, "sorted/%$%", &config.Config{MakePath: true})
	writeFiles(t, r.Fs, "d/a.jpg")
	require.NoError(t, r.Fs.MkdirAll("sorted/.jpg", 0755))

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/*.jpg"))

	require.Equal(t, ExitOK, rep.ExitCode())
	assert.Equal(t, [][2]string{{"d/a.jpg", "sorted/.jpg/a.jpg"}}, mv.moves)
}

func TestRun_Interrupted(t *testing.T) {
	r, mv := newTestRunner(t, "%0%", nil)
	writeFiles(t, r.Fs, "d/a", "d/b")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := r.Run(ctx, sources(r.Fs, t, "d/*"))

	assert.Equal(t, ExitInterrupted, rep.ExitCode())
	assert.Equal(t, 2, rep.Count(StatusSkipped))
	assert.Empty(t, mv.moves)
	assert.ErrorIs(t, rep.Err, context.Canceled)
}

func TestRun_Journal(t *testing.T) {
	r, _ := newTestRunner(t, "%0%.done", nil)
	writeFiles(t, r.Fs, "d/a", "d/b")
	r.Mover = &mover.FsMover{Fs: r.Fs}
	r.Journal = journal.New("d/*", "%0%.done")
	r.JournalPath = "run.json"

	rep := r.Run(context.Background(), sources(r.Fs, t, "d/*"))
	require.Equal(t, ExitOK, rep.ExitCode())

	j, err := journal.Load(r.Fs, "run.json")
	require.NoError(t, err)
	assert.Equal(t, journal.StatusCompleted, j.Status)
	require.Len(t, j.Entries, 2)
	assert.Equal(t, "d/a", j.Entries[0].From)
	assert.Equal(t, "a.done", j.Entries[0].To)

	ok, _ := afero.Exists(r.Fs, "a.done")
	assert.True(t, ok)
}

func TestReport_ExitCodePrecedence(t *testing.T) {
	rep := &Report{}
	assert.Equal(t, ExitNotFound, rep.ExitCode())

	rep.Outcomes = []Outcome{{Status: StatusHelperFailed}}
	assert.Equal(t, ExitHelperFailed, rep.ExitCode())

	rep.Outcomes = append(rep.Outcomes, Outcome{Status: StatusRenameFailed})
	assert.Equal(t, ExitRenameFailed, rep.ExitCode())

	rep.Outcomes = append(rep.Outcomes, Outcome{Status: StatusBadPattern})
	assert.Equal(t, ExitBadPattern, rep.ExitCode())
}
