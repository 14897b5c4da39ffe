package hum

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// bedGain caps a sound file bed relative to full scale.
const bedGain = 0.5

// Bed loops a decoded sound file at the player's sample rate and swells it
// with the same level as the tone.
type Bed struct {
	src    beep.Streamer
	tone   *Tone
	gain   float64
	closer func()
}

// OpenBed decodes a wav, mp3 or flac file for looping under the tone.
func OpenBed(path string, tone *Tone) (*Bed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var src beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, src)
	}
	return newBed(src, tone, func() {
		_ = streamer.Close()
		_ = f.Close()
	}), nil
}

func newBed(src beep.Streamer, tone *Tone, closer func()) *Bed {
	return &Bed{src: src, tone: tone, closer: closer}
}

func (b *Bed) Stream(samples [][2]float64) (int, bool) {
	n, ok := b.src.Stream(samples)
	target := b.tone.level() * bedGain
	for i := 0; i < n; i++ {
		b.gain += (target - b.gain) * gainSmoothing
		samples[i][0] *= b.gain
		samples[i][1] *= b.gain
	}
	return n, ok
}

func (b *Bed) Err() error { return b.src.Err() }

// Close releases the decoder and file.
func (b *Bed) Close() {
	if b.closer != nil {
		b.closer()
		b.closer = nil
	}
}
