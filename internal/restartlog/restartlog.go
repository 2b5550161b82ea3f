// Package restartlog tracks which files a run has already finished, so a
// restarted run can skip them.
package restartlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sjsteiner/seams/internal/auxwriter"
)

const fileName = ".seams_restart.json"

// onDisk is the JSON-serialized shape of the log.
type onDisk struct {
	CompletedFiles []string `json:"completed_files"`
	LastUpdated    int64    `json:"last_updated"`
}

// Log is a persistent record of completed absolute file paths. Safe for
// concurrent use; every mutator takes the lock.
type Log struct {
	mu        sync.Mutex
	path      string
	completed map[string]struct{}
	updated   int64
}

// Path returns the restart log path nested under root.
func Path(root string) string {
	return filepath.Join(root, fileName)
}

// Load reads the restart log at path, or returns an empty one if the file
// does not exist yet.
func Load(path string) (*Log, error) {
	l := &Log{path: path, completed: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading restart log %s: %w", path, err)
	}

	var d onDisk
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing restart log %s: %w", path, err)
	}
	for _, p := range d.CompletedFiles {
		l.completed[p] = struct{}{}
	}
	l.updated = d.LastUpdated
	return l, nil
}

// IsCompleted reports whether path was previously marked completed.
func (l *Log) IsCompleted(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.completed[path]
	return ok
}

// MarkCompleted records path as done.
func (l *Log) MarkCompleted(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.completed[path] = struct{}{}
}

// VerifyCompletedFiles drops any completed entry whose source file or
// expected aux file no longer exists on disk, so a corpus that shrank (or
// lost an aux file) between runs doesn't wedge a restart into thinking
// stale paths are still done.
func (l *Log) VerifyCompletedFiles() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for p := range l.completed {
		if _, err := os.Stat(p); err != nil {
			delete(l.completed, p)
			continue
		}
		if _, err := os.Stat(auxwriter.AuxPath(p)); err != nil {
			delete(l.completed, p)
		}
	}
}

// Stats summarizes the log's contents.
type Stats struct {
	CompletedCount int
	LastUpdated    time.Time
}

// GetStats returns a snapshot of the log's bookkeeping fields.
func (l *Log) GetStats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{CompletedCount: len(l.completed), LastUpdated: time.Unix(l.updated, 0)}
}

// Save writes the log to its path as JSON, stamping LastUpdated with now.
func (l *Log) Save(now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.updated = now.Unix()
	d := onDisk{CompletedFiles: make([]string, 0, len(l.completed)), LastUpdated: l.updated}
	for p := range l.completed {
		d.CompletedFiles = append(d.CompletedFiles, p)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding restart log: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing restart log %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("renaming restart log into place: %w", err)
	}
	return nil
}

// ShouldProcess decides whether path needs (re)processing given the
// restart log and the run's overwrite flags: overwriteAll forces
// reprocessing of everything, and overwriteUseCachedLocations has the same
// effect (previously recorded sentence boundaries are not reused; every
// reprocessed file is detected afresh). Even a file the log marks
// completed is reprocessed if its expected aux file is missing.
func ShouldProcess(path string, log *Log, overwriteAll, overwriteUseCachedLocations bool) bool {
	if overwriteAll || overwriteUseCachedLocations {
		return true
	}
	if !log.IsCompleted(path) {
		return true
	}
	if _, err := os.Stat(auxwriter.AuxPath(path)); err != nil {
		return true
	}
	return false
}
