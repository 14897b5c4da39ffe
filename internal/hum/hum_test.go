package hum

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// countingStreamer emits 1, 2, 3, ... on both channels.
type countingStreamer struct{ next float64 }

func (c *countingStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		c.next++
		samples[i] = [2]float64{c.next, c.next}
	}
	return len(samples), true
}

func (c *countingStreamer) Err() error { return nil }

func TestTapSnapshotChronological(t *testing.T) {
	tap := NewTap(&countingStreamer{}, 8)
	buf := make([][2]float64, 5)
	tap.Stream(buf)
	tap.Stream(buf) // 10 samples through an 8-slot ring

	got := tap.Snapshot(4)
	want := []float64{7, 8, 9, 10}
	for i, w := range want {
		if got[i][0] != w {
			t.Fatalf("snapshot[%d] = %v, want %v (full %v)", i, got[i][0], w, got)
		}
	}
	if n := len(tap.Snapshot(100)); n != 8 {
		t.Errorf("oversized snapshot length = %d, want ring size 8", n)
	}
}

func TestToneSilentUntilLevelSet(t *testing.T) {
	tone := NewTone(SampleRate, 110, 0.1)
	buf := make([][2]float64, 512)
	tone.Stream(buf)
	for _, s := range buf {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("tone without level produced %v", s)
		}
	}
}

func TestToneGainTracksLevel(t *testing.T) {
	tone := NewTone(SampleRate, 110, 0.1)
	tone.SetLevel(1)
	buf := make([][2]float64, 1024)
	for i := 0; i < 40; i++ {
		tone.Stream(buf)
	}
	if math.Abs(tone.Gain()-0.1) > 1e-3 {
		t.Fatalf("gain = %v, want ~0.1", tone.Gain())
	}
	for _, s := range buf {
		if math.Abs(s[0]) > 0.1+1e-9 || s[0] != s[1] {
			t.Fatalf("sample %v exceeds max gain or is not mono", s)
		}
	}

	tone.SetLevel(-3)
	for i := 0; i < 40; i++ {
		tone.Stream(buf)
	}
	if tone.Gain() > 1e-3 {
		t.Errorf("gain after silencing = %v", tone.Gain())
	}
}

func TestToneLevelClamped(t *testing.T) {
	tone := NewTone(SampleRate, 110, 0.1)
	tone.SetLevel(7)
	buf := make([][2]float64, 1024)
	for i := 0; i < 60; i++ {
		tone.Stream(buf)
	}
	if tone.Gain() > 0.1+1e-9 {
		t.Errorf("level above 1 pushed gain to %v", tone.Gain())
	}
}

func TestLevel(t *testing.T) {
	if Level(10, 0, 28) != 0 || Level(10, 140, 0) != 0 {
		t.Error("degenerate geometry should map to silence")
	}
	full := math.Pi * 140 * 140 / (28 * 28) / 3
	if got := Level(full/2, 140, 28); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("half energy level = %v, want 0.5", got)
	}
	if Level(full*4, 140, 28) != 1 {
		t.Error("level should saturate at 1")
	}
}

func TestPlayerWithoutSpeaker(t *testing.T) {
	p := newPlayer(NewTone(SampleRate, 110, 0.1), nil)
	p.SetLevel(1)
	p.SetPaused(true)
	if !p.Paused() {
		t.Fatal("pause not recorded")
	}

	buf := make([][2]float64, 256)
	p.ctrl.Stream(buf)
	for _, s := range buf {
		if s[0] != 0 {
			t.Fatalf("paused player produced %v", s)
		}
	}
	if len(p.Scope(16)) != 16 {
		t.Error("scope length mismatch")
	}

	p.SetPaused(false)
	for i := 0; i < 20; i++ {
		p.ctrl.Stream(buf)
	}
	loud := false
	for _, s := range p.Scope(256) {
		if s[0] != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Error("unpaused player should reach the tap")
	}
	p.Close()
}

// constStreamer emits a fixed value forever.
type constStreamer float64

func (c constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{float64(c), float64(c)}
	}
	return len(samples), true
}

func (c constStreamer) Err() error { return nil }

func TestBedFollowsToneLevel(t *testing.T) {
	tone := NewTone(SampleRate, 110, 0.1)
	bed := newBed(constStreamer(1), tone, nil)

	buf := make([][2]float64, 512)
	bed.Stream(buf)
	if buf[511][0] != 0 {
		t.Fatalf("bed audible before any level: %v", buf[511][0])
	}

	tone.SetLevel(1)
	for i := 0; i < 100; i++ {
		bed.Stream(buf)
	}
	if got := buf[511][0]; math.Abs(got-bedGain) > 1e-3 {
		t.Errorf("bed settled at %v, want %v", got, bedGain)
	}

	tone.SetLevel(0)
	for i := 0; i < 100; i++ {
		bed.Stream(buf)
	}
	if got := buf[511][0]; got > 1e-3 {
		t.Errorf("bed did not fade out: %v", got)
	}
}

func TestBedCloseOnce(t *testing.T) {
	closed := 0
	bed := newBed(constStreamer(0), NewTone(SampleRate, 110, 0.1), func() { closed++ })
	p := newPlayer(bed.tone, bed)
	p.Close()
	p.Close()
	if closed != 1 {
		t.Errorf("closer ran %d times, want 1", closed)
	}
}

func TestOpenBedRejects(t *testing.T) {
	tone := NewTone(SampleRate, 110, 0.1)
	if _, err := OpenBed(filepath.Join(t.TempDir(), "missing.wav"), tone); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "drone.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenBed(path, tone); err == nil {
		t.Error("expected error for an unsupported extension")
	}

	junk := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(junk, []byte("not a wave file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenBed(junk, tone); err == nil {
		t.Error("expected decode error for junk data")
	}
}
