package hum

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)
	ringSize   = 4096
)

// Player chains (tone + bed) -> tap -> ctrl and owns the speaker while
// playing.
type Player struct {
	tone    *Tone
	bed     *Bed
	tap     *Tap
	ctrl    *beep.Ctrl
	speaker bool
}

func newPlayer(tone *Tone, bed *Bed) *Player {
	mix := &beep.Mixer{}
	mix.Add(tone)
	if bed != nil {
		mix.Add(bed)
	}
	tap := NewTap(mix, ringSize)
	return &Player{
		tone: tone,
		bed:  bed,
		tap:  tap,
		ctrl: &beep.Ctrl{Streamer: tap},
	}
}

// Start initialises the speaker and begins playback. bedPath, when set,
// names a sound file looped under the tone.
func Start(freq, maxGain float64, bedPath string) (*Player, error) {
	tone := NewTone(SampleRate, freq, maxGain)
	var bed *Bed
	if bedPath != "" {
		var err error
		if bed, err = OpenBed(bedPath, tone); err != nil {
			return nil, fmt.Errorf("open hum file: %w", err)
		}
	}
	p := newPlayer(tone, bed)
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		p.closeBed()
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	p.speaker = true
	speaker.Play(p.ctrl)
	return p, nil
}

func (p *Player) SetLevel(level float64) { p.tone.SetLevel(level) }

// SetPaused mutes the hum while the window is hidden.
func (p *Player) SetPaused(paused bool) {
	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.ctrl.Paused = paused
}

func (p *Player) Paused() bool {
	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.ctrl.Paused
}

// Scope returns the last n played samples for the overlay.
func (p *Player) Scope(n int) [][2]float64 { return p.tap.Snapshot(n) }

func (p *Player) Close() {
	if p.speaker {
		// Clear takes the speaker lock itself.
		speaker.Clear()
		p.speaker = false
	}
	p.closeBed()
}

func (p *Player) closeBed() {
	if p.bed != nil {
		p.bed.Close()
		p.bed = nil
	}
}
