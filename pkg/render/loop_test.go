package render

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLoop_InvokesFrames(t *testing.T) {
	var frames atomic.Int32
	l := &Loop{Interval: 5 * time.Millisecond}
	l.Start(func() { frames.Add(1) })
	defer l.Stop()

	deadline := time.After(2 * time.Second)
	for frames.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d frames after 2s", frames.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestLoop_StartIdempotent(t *testing.T) {
	var frames atomic.Int32
	l := &Loop{Interval: 5 * time.Millisecond}
	l.Start(func() { frames.Add(1) })
	l.Start(func() { frames.Add(100) }) // ignored: already running
	defer l.Stop()

	time.Sleep(50 * time.Millisecond)
	if frames.Load() >= 100 {
		t.Error("second Start replaced the running frame callback")
	}
}

func TestLoop_StopIdempotent(t *testing.T) {
	l := &Loop{Interval: 5 * time.Millisecond}
	l.Start(func() {})
	l.Stop()
	l.Stop() // must not panic or block

	if l.Running() {
		t.Error("loop still reported running after Stop")
	}
}

func TestLoop_StopHaltsFrames(t *testing.T) {
	var frames atomic.Int32
	l := &Loop{Interval: 5 * time.Millisecond}
	l.Start(func() { frames.Add(1) })
	time.Sleep(30 * time.Millisecond)
	l.Stop()

	at := frames.Load()
	time.Sleep(50 * time.Millisecond)
	if frames.Load() != at {
		t.Errorf("frames kept running after Stop: %d -> %d", at, frames.Load())
	}
}

func TestLoop_RestartAfterStop(t *testing.T) {
	var frames atomic.Int32
	l := &Loop{Interval: 5 * time.Millisecond}
	l.Start(func() { frames.Add(1) })
	l.Stop()

	frames.Store(0)
	l.Start(func() { frames.Add(1) })
	defer l.Stop()

	deadline := time.After(2 * time.Second)
	for frames.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("loop did not restart")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestLoop_SurvivesFramePanic(t *testing.T) {
	var frames atomic.Int32
	l := &Loop{Interval: 5 * time.Millisecond}
	l.Start(func() {
		if frames.Add(1) == 1 {
			panic("bad frame")
		}
	})
	defer l.Stop()

	deadline := time.After(2 * time.Second)
	for frames.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("loop died after panic: %d frames", frames.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	if !l.Running() {
		t.Error("loop stopped after a frame panic")
	}
}
