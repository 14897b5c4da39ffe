package loop

import "testing"

func TestTickRunsOnlyWhileRunning(t *testing.T) {
	calls := 0
	l := New(func() { calls++ })

	if l.Tick() {
		t.Fatal("idle loop should not run a frame")
	}
	l.Start()
	l.Tick()
	l.Tick()
	if calls != 2 {
		t.Fatalf("expected 2 frames, got %d", calls)
	}
	l.Stop()
	for i := 0; i < 5; i++ {
		l.Tick()
	}
	if calls != 2 {
		t.Fatalf("stopped loop ran frames: %d", calls)
	}
	if l.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", l.Frames())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	calls := 0
	l := New(func() { calls++ })

	if !l.Start() {
		t.Fatal("first Start should arm the loop")
	}
	if l.Start() {
		t.Error("second Start should be a no-op")
	}
	l.Tick()
	if calls != 1 {
		t.Errorf("double Start must not double frames, got %d calls", calls)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	l := New(func() {})
	if l.Stop() {
		t.Error("Stop on idle loop should report false")
	}
	l.Start()
	if !l.Stop() || l.Running() {
		t.Error("Stop should disarm a running loop")
	}
}

func TestStopFromInsideFrame(t *testing.T) {
	calls := 0
	var l *Loop
	l = New(func() {
		calls++
		l.Stop()
	})
	l.Start()
	l.Tick()
	l.Tick()
	if calls != 1 {
		t.Errorf("frame that stops the loop should run once, ran %d", calls)
	}
}

func TestNilFrame(t *testing.T) {
	l := New(nil)
	l.Start()
	if l.Tick() {
		t.Error("nil frame callback should never run")
	}
}
