// Package hum sonifies the dot field: a low sine tone whose loudness follows
// how much of the field the pointer is disturbing.
package hum

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// gainSmoothing is the per-sample approach rate toward the target gain,
// roughly 50 ms at 44.1 kHz.
const gainSmoothing = 0.0005

// Tone is an endless sine streamer with a smoothed, settable gain.
type Tone struct {
	step    float64
	maxGain float64

	phase float64
	gain  float64

	mu     sync.Mutex
	lvl    float64
	target float64
}

func NewTone(sr beep.SampleRate, freq, maxGain float64) *Tone {
	return &Tone{
		step:    2 * math.Pi * freq / float64(sr),
		maxGain: maxGain,
	}
}

// SetLevel sets the loudness target as a fraction of the maximum gain.
func (t *Tone) SetLevel(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	t.mu.Lock()
	t.lvl = level
	t.target = level * t.maxGain
	t.mu.Unlock()
}

func (t *Tone) level() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lvl
}

func (t *Tone) Stream(samples [][2]float64) (int, bool) {
	t.mu.Lock()
	target := t.target
	t.mu.Unlock()

	for i := range samples {
		t.gain += (target - t.gain) * gainSmoothing
		v := math.Sin(t.phase) * t.gain
		samples[i][0], samples[i][1] = v, v
		t.phase += t.step
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return len(samples), true
}

func (t *Tone) Err() error { return nil }

// Gain is the current smoothed gain. Only meaningful between Stream calls.
func (t *Tone) Gain() float64 { return t.gain }

// Level maps a frame's summed influence ratio to [0,1]. A pointer resting in
// open field sums to about a third of the dots inside the radius.
func Level(energy, radius, spacing float64) float64 {
	if radius <= 0 || spacing <= 0 {
		return 0
	}
	full := math.Pi * radius * radius / (spacing * spacing) / 3
	if full <= 0 {
		return 0
	}
	return math.Min(1, energy/full)
}
