package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"merchant-kita.onboarding/internal/domain/entities"
)

// SaveFunc persists one queued draft patch.
type SaveFunc func(ctx context.Context, merchantCode string, patch *entities.DraftPatch) error

// AutosaveJob debounces draft writes. Each Touch queues the patch and
// restarts the merchant's timer; when the timer fires the queued patches are
// applied in arrival order in a single flush. Flush forces the write now,
// Stop cancels all timers without saving.
type AutosaveJob struct {
	delay time.Duration
	save  SaveFunc

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string][]*entities.DraftPatch
	stopped bool
}

func NewAutosaveJob(delay time.Duration, save SaveFunc) *AutosaveJob {
	return &AutosaveJob{
		delay:   delay,
		save:    save,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string][]*entities.DraftPatch),
	}
}

// Touch queues a patch and restarts the debounce timer for the merchant.
func (j *AutosaveJob) Touch(merchantCode string, patch *entities.DraftPatch) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopped {
		return
	}

	j.pending[merchantCode] = append(j.pending[merchantCode], patch)

	if timer, ok := j.timers[merchantCode]; ok {
		timer.Stop()
	}
	j.timers[merchantCode] = time.AfterFunc(j.delay, func() {
		j.flush(merchantCode)
	})
}

// Flush writes any queued patches for the merchant immediately.
func (j *AutosaveJob) Flush(merchantCode string) {
	j.mu.Lock()
	if timer, ok := j.timers[merchantCode]; ok {
		timer.Stop()
		delete(j.timers, merchantCode)
	}
	j.mu.Unlock()

	j.flush(merchantCode)
}

// Stop cancels all timers. Queued patches are dropped.
func (j *AutosaveJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopped = true
	for code, timer := range j.timers {
		timer.Stop()
		delete(j.timers, code)
	}
	j.pending = make(map[string][]*entities.DraftPatch)
	log.Println("⏹️ Autosave job stopped")
}

// Pending returns the queued patch count for a merchant.
func (j *AutosaveJob) Pending(merchantCode string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.pending[merchantCode])
}

func (j *AutosaveJob) flush(merchantCode string) {
	j.mu.Lock()
	patches := j.pending[merchantCode]
	delete(j.pending, merchantCode)
	delete(j.timers, merchantCode)
	j.mu.Unlock()

	if len(patches) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, patch := range patches {
		if err := j.save(ctx, merchantCode, patch); err != nil {
			log.Printf("❌ Autosave failed for %s: %v", merchantCode, err)
			return
		}
	}
}
