package usecase

import (
	"sync"
	"time"

	"github.com/secmon-lab/casebook/pkg/domain/types"
)

const DefaultSaveStatusDelay = 2 * time.Second

// SaveStatusTracker drives the "changes saved" indicator. Mark switches it
// to saved and it falls back to idle once delay passes without another
// Mark.
type SaveStatusTracker struct {
	delay time.Duration

	mu     sync.Mutex
	status types.SaveStatus
	timer  *time.Timer
	gen    uint64
}

func NewSaveStatusTracker(delay time.Duration) *SaveStatusTracker {
	if delay <= 0 {
		delay = DefaultSaveStatusDelay
	}
	return &SaveStatusTracker{
		delay:  delay,
		status: types.SaveStatusIdle,
	}
}

func (t *SaveStatusTracker) Mark() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = types.SaveStatusSaved
	if t.timer != nil {
		t.timer.Stop()
	}

	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// A newer Mark owns the indicator now
		if t.gen != gen {
			return
		}
		t.status = types.SaveStatusIdle
		t.timer = nil
	})
}

func (t *SaveStatusTracker) Status() types.SaveStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Stop cancels a pending reset and returns the tracker to idle
func (t *SaveStatusTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.status = types.SaveStatusIdle
}
