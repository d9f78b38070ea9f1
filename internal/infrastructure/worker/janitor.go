package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often idle drafts are looked for
const DefaultSweepInterval = 5 * time.Minute

// Evicter drops expired entries and reports how many went
type Evicter interface {
	EvictExpired() int
}

// Janitor periodically evicts idle expense drafts
type Janitor struct {
	interval time.Duration
	store    Evicter
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	evicted int
}

// NewJanitor creates a janitor sweeping store every interval
func NewJanitor(interval time.Duration, store Evicter, logger *zap.Logger) *Janitor {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Janitor{
		interval: interval,
		store:    store,
		logger:   logger,
	}
}

// Start begins the sweep loop
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return fmt.Errorf("draft janitor already running")
	}

	var loopCtx context.Context
	loopCtx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})
	j.running = true

	go j.loop(loopCtx, j.done)

	j.logger.Info("DraftJanitor started", zap.Duration("interval", j.interval))
	return nil
}

// Stop ends the sweep loop and waits for it to exit
func (j *Janitor) Stop() error {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return nil
	}
	j.running = false
	cancel, done := j.cancel, j.done
	j.mu.Unlock()

	cancel()
	<-done

	j.logger.Info("DraftJanitor stopped", zap.Int("evicted_total", j.Evicted()))
	return nil
}

// Name returns the worker name for identification
func (j *Janitor) Name() string {
	return "DraftJanitor"
}

// Evicted returns how many drafts the janitor has removed
func (j *Janitor) Evicted() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.evicted
}

func (j *Janitor) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := j.store.EvictExpired()
			j.mu.Lock()
			j.evicted += n
			j.mu.Unlock()
		}
	}
}
