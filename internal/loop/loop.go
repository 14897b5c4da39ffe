// Package loop turns a host's display-refresh callback into a cancellable
// animation loop.
//
// The host calls Tick once per refresh. Tick runs the frame callback only
// while the loop is armed, so Stop takes effect before the next refresh and
// Start on a running loop changes nothing.
package loop

// Loop is not safe for concurrent use; hosts drive it from their single
// game goroutine.
type Loop struct {
	frame   func()
	running bool
	frames  uint64
}

func New(frame func()) *Loop {
	return &Loop{frame: frame}
}

// Start arms the loop. Returns false if it was already running.
func (l *Loop) Start() bool {
	if l.running {
		return false
	}
	l.running = true
	return true
}

// Stop cancels the pending frame. Returns false if it was not running.
func (l *Loop) Stop() bool {
	if !l.running {
		return false
	}
	l.running = false
	return true
}

func (l *Loop) Running() bool { return l.running }

// Frames counts executed frame callbacks.
func (l *Loop) Frames() uint64 { return l.frames }

// Tick is the host refresh hook. It reports whether a frame ran.
func (l *Loop) Tick() bool {
	if !l.running || l.frame == nil {
		return false
	}
	l.frames++
	l.frame()
	return true
}
