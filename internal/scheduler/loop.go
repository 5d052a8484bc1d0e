package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is how often the loop checks for due schedules. It is
// under a minute so every "HH:MM" reading is observed by at least one
// tick.
const DefaultInterval = 30 * time.Second

// Loop drives Dispatcher ticks on a fixed interval in the configured
// timezone.
type Loop struct {
	dispatcher *Dispatcher
	interval   time.Duration
	location   *time.Location
	now        func() time.Time // injectable for tests

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// LoopOpts holds parameters for creating a Loop.
type LoopOpts struct {
	Dispatcher *Dispatcher
	Interval   time.Duration  // defaults to DefaultInterval
	Location   *time.Location // defaults to time.Local
	Now        func() time.Time
}

// NewLoop creates a Loop.
func NewLoop(opts LoopOpts) (*Loop, error) {
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("scheduler: dispatcher is required")
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("scheduler: interval must not be negative")
	}

	l := &Loop{
		dispatcher: opts.Dispatcher,
		interval:   opts.Interval,
		location:   opts.Location,
		now:        opts.Now,
	}
	if l.interval == 0 {
		l.interval = DefaultInterval
	}
	if l.location == nil {
		l.location = time.Local
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l, nil
}

// Start launches the tick goroutine. Returns false if already running.
func (l *Loop) Start() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running.Load() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running.Store(true)

	go func() {
		defer close(l.done)

		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		log.Printf("scheduler: started (interval %v, timezone %s)", l.interval, l.location)

		l.safeTick(ctx)

		for {
			select {
			case <-ctx.Done():
				log.Printf("scheduler: stopping")
				return
			case <-ticker.C:
				l.safeTick(ctx)
			}
		}
	}()

	return true
}

// Stop halts the loop and waits for the tick goroutine to exit. Returns
// false if not running.
func (l *Loop) Stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.Load() {
		return false
	}

	l.cancel()
	<-l.done
	l.running.Store(false)

	log.Printf("scheduler: stopped")
	return true
}

// IsRunning reports whether the loop is active.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// safeTick runs one pass, recovering from panics so a bad tick cannot
// kill the loop.
func (l *Loop) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler: tick panic recovered: %v", r)
		}
	}()
	l.dispatcher.Tick(ctx, l.now().In(l.location))
}
