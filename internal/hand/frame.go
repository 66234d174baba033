// Package hand turns raw tracker landmarks into screen-space hand frames
// and keeps a short time-windowed history of them.
package hand

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayusman/obakehunt/internal/detector"
)

// ErrLandmarkCount is returned when a landmark list is not a full hand.
var ErrLandmarkCount = errors.New("wrong landmark count")

// minThumbLength is the thumb length below which the aim is undefined.
const minThumbLength = 1e-6

// Point2 is a 2D point in normalized screen space.
type Point2 struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point2) Sub(q Point2) Point2 {
	return Point2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the Euclidean length of p.
func (p Point2) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Frame is one corrected hand observation.
type Frame struct {
	// Points are aspect-corrected and mirrored. Z is untouched.
	Points [detector.NumLandmarks]detector.Point3D

	// Time is the capture timestamp in seconds.
	Time float64

	// Aim is the reticle position. Only meaningful when HasAim is true.
	Aim Point2

	thumbLength float64
	hasAim      bool
}

// Build corrects landmarks for the video aspect ratio, mirrors them, and
// derives the aim target scaled by sensitivity.
func Build(points []detector.Point3D, aspect, sensitivity, timestamp float64) (*Frame, error) {
	if len(points) < detector.NumLandmarks {
		return nil, fmt.Errorf("build frame: got %d points: %w", len(points), ErrLandmarkCount)
	}

	f := &Frame{Time: timestamp}
	for i, p := range points[:detector.NumLandmarks] {
		x := p.X - 0.5
		y := p.Y - 0.5
		if aspect < 1 {
			y /= aspect
		} else {
			x *= aspect
		}
		f.Points[i] = detector.Point3D{X: 1 - (x + 0.5), Y: y + 0.5, Z: p.Z}
	}

	f.thumbLength = detector.Distance(f.Points[detector.ThumbMCP], f.Points[detector.ThumbIP]) +
		detector.Distance(f.Points[detector.ThumbIP], f.Points[detector.ThumbTip])

	if f.thumbLength >= minThumbLength {
		base := f.Points[detector.IndexMCP]
		dir := f.Points[detector.IndexTip].Sub(base)
		scale := sensitivity / f.thumbLength
		f.Aim = Point2{X: base.X + dir.X*scale, Y: base.Y + dir.Y*scale}
		f.hasAim = true
	}

	return f, nil
}

// FromLandmarks is Build for a detector hand.
func FromLandmarks(h detector.HandLandmarks, aspect, sensitivity, timestamp float64) (*Frame, error) {
	return Build(h.Points[:], aspect, sensitivity, timestamp)
}

// HasAim reports whether the thumb was long enough to derive an aim.
func (f *Frame) HasAim() bool { return f.hasAim }

// ThumbLength is the two-segment length MCP-IP-tip, used as a hand-size scale.
func (f *Frame) ThumbLength() float64 { return f.thumbLength }

func (f *Frame) ThumbTip() detector.Point3D { return f.Points[detector.ThumbTip] }
func (f *Frame) IndexBase() detector.Point3D { return f.Points[detector.IndexMCP] }
func (f *Frame) IndexTip() detector.Point3D { return f.Points[detector.IndexTip] }
func (f *Frame) MiddleTip() detector.Point3D { return f.Points[detector.MiddleTip] }
func (f *Frame) RingPIP() detector.Point3D { return f.Points[detector.RingPIP] }
