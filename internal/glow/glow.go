// Package glow moves a soft halo after the pointer on a damped spring.
package glow

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Rest is the halo's starting coordinate on both axes, off any viewport.
const Rest = -300.0

// Follower is a 2D spring chasing a target point.
type Follower struct {
	spring  harmonica.Spring
	x, y    float64
	vx, vy  float64
	targetX float64
	targetY float64
}

// New builds a follower stepped fps times per second from a mass-spring
// stiffness and damping coefficient.
func New(fps int, stiffness, damping float64) *Follower {
	freq := math.Sqrt(stiffness)
	ratio := damping / (2 * freq)
	return &Follower{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), freq, ratio),
		x:       Rest,
		y:       Rest,
		targetX: Rest,
		targetY: Rest,
	}
}

// Target sets the point to chase.
func (f *Follower) Target(x, y float64) {
	f.targetX, f.targetY = x, y
}

// Step advances one frame and returns the new position.
func (f *Follower) Step() (float64, float64) {
	f.x, f.vx = f.spring.Update(f.x, f.vx, f.targetX)
	f.y, f.vy = f.spring.Update(f.y, f.vy, f.targetY)
	return f.x, f.y
}

func (f *Follower) Position() (float64, float64) { return f.x, f.y }
