// Package autosave drives periodic note saves at the interval configured
// in the settings record.
package autosave

import (
	"context"
	"log"
	"sync"
	"time"
)

// SaveFunc persists whatever the embedding application considers the
// current editing state. Errors are logged, never retried.
type SaveFunc func(ctx context.Context) error

// saveTimeout bounds a single save so a hung write cannot stall the loop.
const saveTimeout = 10 * time.Second

// Scheduler invokes a save callback on a fixed cadence. It owns no
// container state; the callback decides what to persist.
type Scheduler struct {
	save     SaveFunc
	interval time.Duration

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
}

// New creates a scheduler that calls save every intervalMs milliseconds.
// Non-positive intervals fall back to 2000ms.
func New(save SaveFunc, intervalMs int) *Scheduler {
	if intervalMs <= 0 {
		intervalMs = 2000
	}
	return &Scheduler{
		save:     save,
		interval: time.Duration(intervalMs) * time.Millisecond,
	}
}

// Start launches the save loop. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})

	go s.loop(s.stopCh)
}

// Stop halts the save loop. Safe to call on a stopped scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
}

func (s *Scheduler) loop(stopCh <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			if err := s.save(ctx); err != nil {
				log.Printf("autosave: %v", err)
			}
			cancel()
		}
	}
}
