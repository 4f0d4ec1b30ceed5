package render

import (
	"sync"
	"time"

	"github.com/graphscape/graphscape/pkg/debug"
)

// DefaultFrameInterval is roughly 30 frames per second, plenty for a
// terminal-backed canvas.
const DefaultFrameInterval = 33 * time.Millisecond

// Loop drives repeated frame callbacks on a fixed interval. Start and Stop
// are idempotent, and a panic in one frame is recovered without stopping
// subsequent frames.
type Loop struct {
	Interval time.Duration

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// Start begins invoking frame on the loop goroutine. Calling Start on a
// running loop is a no-op.
func (l *Loop) Start(frame func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	l.done = make(chan struct{})
	l.running = true

	go func(done chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				safeFrame(frame)
			}
		}
	}(l.done)
}

// safeFrame runs one frame callback, recovering any panic so a bad frame
// cannot take down the loop goroutine.
func safeFrame(frame func()) {
	defer func() {
		if r := recover(); r != nil {
			debug.Log("render loop: frame panic recovered: %v", r)
		}
	}()
	frame()
}

// Stop halts the loop. Calling Stop on a stopped loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	close(l.done)
}

// Running reports whether the loop is currently active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
