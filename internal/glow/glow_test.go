package glow

import (
	"math"
	"testing"

	"github.com/iburimskiy/dotfield/internal/config"
)

func TestFollowerStartsAtRest(t *testing.T) {
	f := New(config.TPS, config.GlowStiffness, config.GlowDamping)
	x, y := f.Position()
	if x != Rest || y != Rest {
		t.Fatalf("start = (%v,%v), want rest", x, y)
	}
	x, y = f.Step()
	if x != Rest || y != Rest {
		t.Errorf("untargeted step moved the halo to (%v,%v)", x, y)
	}
}

func TestFollowerConverges(t *testing.T) {
	f := New(config.TPS, config.GlowStiffness, config.GlowDamping)
	f.Target(400, 250)

	var x, y float64
	for i := 0; i < 3*config.TPS; i++ {
		x, y = f.Step()
	}
	if math.Abs(x-400) > 0.5 || math.Abs(y-250) > 0.5 {
		t.Errorf("after 3s halo at (%v,%v), want near (400,250)", x, y)
	}
}

func TestFollowerLags(t *testing.T) {
	f := New(config.TPS, config.GlowStiffness, config.GlowDamping)
	f.Target(400, 250)
	x, _ := f.Step()
	if x >= 400 {
		t.Errorf("halo reached target in one frame: x=%v", x)
	}
	if x <= Rest {
		t.Errorf("halo did not move toward target: x=%v", x)
	}
}
