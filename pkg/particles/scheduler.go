package particles

import (
	"context"
	"sync"
	"time"
)

// FrameID identifies a requested frame so it can be cancelled.
type FrameID uint64

// Scheduler paces frames the way a display refresh does: each requested
// callback runs once, on the next frame.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// DefaultFrameRate is the refresh rate used by NewLoop for non-positive rates.
const DefaultFrameRate = 60

type frameRequest struct {
	id        FrameID
	fn        func()
	cancelled bool
}

// Loop is a ticker-driven Scheduler. Callbacks run on the goroutine calling
// Run or RunFrame; RequestFrame and CancelFrame may be called from any
// goroutine.
type Loop struct {
	interval time.Duration

	mu      sync.Mutex
	lastID  FrameID
	pending []*frameRequest
	running []*frameRequest
}

// NewLoop returns a loop ticking at fps frames per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return &Loop{interval: time.Second / time.Duration(fps)}
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// RequestFrame queues fn for the next frame.
func (l *Loop) RequestFrame(fn func()) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastID++
	if fn != nil {
		l.pending = append(l.pending, &frameRequest{id: l.lastID, fn: fn})
	}
	return l.lastID
}

// CancelFrame drops a queued callback, including one in the frame currently
// running that has not been reached yet. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, req := range l.pending {
		if req.id == id {
			req.cancelled = true
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	for _, req := range l.running {
		if req.id == id {
			req.cancelled = true
			return
		}
	}
}

// Pending reports the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// RunFrame runs the callbacks queued before the call and returns how many ran.
// Callbacks requested while running wait for the next frame.
func (l *Loop) RunFrame() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.running = batch
	l.mu.Unlock()

	ran := 0
	for _, req := range batch {
		l.mu.Lock()
		cancelled := req.cancelled
		l.mu.Unlock()
		if cancelled {
			continue
		}
		req.fn()
		ran++
	}

	l.mu.Lock()
	l.running = nil
	l.mu.Unlock()
	return ran
}

// Run ticks until ctx is done and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.RunFrame()
		}
	}
}
