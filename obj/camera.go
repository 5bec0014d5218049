// Package obj holds plain simulation objects that are not entities:
// the camera and the viewport math around it.
package obj

import (
	"math"

	"github.com/milk9111/undercroft/common"
)

const (
	lookaheadRate = 6.0 // fixed interpolation rate for the lookahead offset
	zoomRate      = 4.0 // fixed rate for the zoom filter
)

// LookaheadMode selects how the camera anticipates its target.
type LookaheadMode uint8

const (
	LookaheadNone LookaheadMode = iota
	LookaheadFixed
	LookaheadFacing
)

// Camera is a process-wide controller created once at startup and
// reconfigured on each room enter. Position smoothing and zoom
// smoothing are independent exponential filters.
type Camera struct {
	Pos common.Vec2

	screenW int
	screenH int

	zoom       float64
	targetZoom float64

	// world bounds for clamping; zero max means unbounded
	minX, minY float64
	maxX, maxY float64

	smooth   float64 // per-second follow rate, set per room enter
	deadzone float64

	lookMode   LookaheadMode
	lookFixed  common.Vec2
	lookDist   float64
	lookOffset common.Vec2 // smoothed toward its target to avoid snapping
}

// NewCamera creates a camera with the given logical screen size and
// initial zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		screenW:    screenW,
		screenH:    screenH,
		zoom:       zoom,
		targetZoom: zoom,
		smooth:     5,
	}
}

// Configure applies the per-room follow settings. Called on room enter,
// never per frame.
func (c *Camera) Configure(smooth, deadzone float64) {
	if smooth > 0 {
		c.smooth = smooth
	}
	c.deadzone = math.Max(deadzone, 0)
}

// SetBounds sets the world rectangle the view must stay inside.
func (c *Camera) SetBounds(minX, minY, maxX, maxY float64) {
	c.minX, c.minY = minX, minY
	c.maxX, c.maxY = maxX, maxY
}

// SetLookaheadFixed makes the camera lead by a constant offset.
func (c *Camera) SetLookaheadFixed(offset common.Vec2) {
	c.lookMode = LookaheadFixed
	c.lookFixed = offset
}

// SetLookaheadFacing makes the camera lead by distance projected along
// the target's rotation.
func (c *Camera) SetLookaheadFacing(distance float64) {
	c.lookMode = LookaheadFacing
	c.lookDist = distance
}

// SetTargetZoom feeds the external zoom policy's desired zoom. The
// actual zoom eases toward it independently of position smoothing.
func (c *Camera) SetTargetZoom(z float64) {
	if z > 0 {
		c.targetZoom = z
	}
}

// Zoom returns the current zoom scalar.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// Update advances the camera one step toward the target position,
// applying deadzone, lookahead, zoom easing, and the bounds clamp.
func (c *Camera) Update(target common.Vec2, targetRotation, dt float64) {
	if dt <= 0 {
		return
	}

	if target.DistanceTo(c.Pos) > c.deadzone {
		f := common.DampFactor(c.smooth, dt)
		c.Pos.X = common.Lerp(c.Pos.X, target.X, f)
		c.Pos.Y = common.Lerp(c.Pos.Y, target.Y, f)
	}

	var lookTarget common.Vec2
	switch c.lookMode {
	case LookaheadFixed:
		lookTarget = c.lookFixed
	case LookaheadFacing:
		lookTarget = common.FromAngle(targetRotation).Scale(c.lookDist)
	}
	lf := common.DampFactor(lookaheadRate, dt)
	c.lookOffset.X = common.Lerp(c.lookOffset.X, lookTarget.X, lf)
	c.lookOffset.Y = common.Lerp(c.lookOffset.Y, lookTarget.Y, lf)

	c.zoom = common.Lerp(c.zoom, c.targetZoom, common.DampFactor(zoomRate, dt))

	c.clamp()
}

// SnapTo immediately centers the camera on a world position, clearing
// the lookahead filter. Used after a room swap; no smoothing.
func (c *Camera) SnapTo(p common.Vec2) {
	c.Pos = p
	c.lookOffset = common.Vec2{}
	c.zoom = c.targetZoom
	c.clamp()
}

// Center returns the effective view center: smoothed position plus the
// smoothed lookahead offset, clamped to bounds.
func (c *Camera) Center() common.Vec2 {
	center := c.Pos.Add(c.lookOffset)
	return c.clampPoint(center)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() common.Vec2 {
	center := c.Center()
	halfW := float64(c.screenW) / c.zoom / 2
	halfH := float64(c.screenH) / c.zoom / 2
	return common.Vec2{X: center.X - halfW, Y: center.Y - halfH}
}

// WorldToScreen projects a world position into screen pixels.
func (c *Camera) WorldToScreen(p common.Vec2) (float64, float64) {
	tl := c.ViewTopLeft()
	return (p.X - tl.X) * c.zoom, (p.Y - tl.Y) * c.zoom
}

// clamp constrains the base position. The view rectangle shrinks in
// world units as zoom increases, so the usable range grows with zoom.
func (c *Camera) clamp() {
	c.Pos = c.clampPoint(c.Pos)
}

func (c *Camera) clampPoint(p common.Vec2) common.Vec2 {
	if c.maxX <= c.minX && c.maxY <= c.minY {
		return p
	}
	halfW := float64(c.screenW) / c.zoom / 2
	halfH := float64(c.screenH) / c.zoom / 2

	if c.maxX > c.minX {
		lo, hi := c.minX+halfW, c.maxX-halfW
		if hi < lo {
			p.X = (c.minX + c.maxX) / 2
		} else {
			p.X = common.Clamp(p.X, lo, hi)
		}
	}
	if c.maxY > c.minY {
		lo, hi := c.minY+halfH, c.maxY-halfH
		if hi < lo {
			p.Y = (c.minY + c.maxY) / 2
		} else {
			p.Y = common.Clamp(p.Y, lo, hi)
		}
	}
	return p
}
