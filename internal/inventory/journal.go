package inventory

import (
	"sync"
	"time"
)

// JournalTimeLayout is the timestamp layout of journal lines.
const JournalTimeLayout = "2006-01-02 15:04:05.000000"

// Journal collects human-readable lines describing store actions.
// It lives only as long as the caller keeps it.
type Journal struct {
	mu    sync.Mutex
	lines []string
}

// Lines returns the recorded lines, oldest first.
func (j *Journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.lines...)
}

func (j *Journal) record(at time.Time, action string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, at.Format(JournalTimeLayout)+": "+action)
}
