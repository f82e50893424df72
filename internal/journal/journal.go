package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jorge-barreto/smv/internal/mover"
)

const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
	StatusUndone      = "undone"
)

// Entry is one completed rename.
type Entry struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// Journal records the renames of one run so they can be reverted.
type Journal struct {
	mu       sync.Mutex
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Status   string    `json:"status"`
	Source   string    `json:"source"`
	Template string    `json:"template"`
	Entries  []Entry   `json:"entries"`
}

// New starts a journal for a run with a fresh run ID.
func New(source, template string) *Journal {
	return &Journal{
		RunID:    uuid.NewString(),
		Started:  time.Now().UTC(),
		Status:   StatusRunning,
		Source:   source,
		Template: template,
	}
}

// Record appends a completed rename.
func (j *Journal) Record(from, to string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Entries = append(j.Entries, Entry{From: from, To: to, At: time.Now().UTC()})
}

// Len returns the number of recorded renames.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.Entries)
}

// Save writes the journal to path.
func (j *Journal) Save(fsys afero.Fs, path string) error {
	j.mu.Lock()
	data, err := json.MarshalIndent(j, "", "  ")
	j.mu.Unlock()
	if err != nil {
		return err
	}
	return writeFileAtomic(fsys, path, data, 0644)
}

// Load reads a journal written by Save.
func Load(fsys afero.Fs, path string) (*Journal, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parsing journal %s: %w", path, err)
	}
	if j.RunID == "" {
		return nil, fmt.Errorf("journal %s: missing run_id", path)
	}
	return &j, nil
}

// Undo moves every recorded file back, newest first, and returns how many
// were restored. It stops at the first failure so a partial undo can be
// resumed after the cause is fixed.
func Undo(ctx context.Context, m mover.Mover, j *Journal) (int, error) {
	if j.Status == StatusUndone {
		return 0, fmt.Errorf("run %s was already undone", j.RunID)
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	restored := 0
	for i := len(j.Entries) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return restored, err
		}
		e := j.Entries[i]
		if err := m.Move(ctx, e.To, e.From); err != nil {
			j.Entries = j.Entries[:i+1]
			return restored, fmt.Errorf("restoring %s: %w", e.From, err)
		}
		restored++
	}
	j.Entries = nil
	j.Status = StatusUndone
	return restored, nil
}
