/*
NAME
  geom.go

DESCRIPTION
  geom.go provides the Point and Corners types shared by the document
  scanner, marker locator and coordinate mapper, plus the bilinear
  quadrilateral mapping both the scanner's warp stage and the
  coordinate mapper use.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package geom provides the small geometric vocabulary shared across
// the OMR pipeline: 2-D points, the four-corner quadrilateral that
// frames a rectified or unrectified sheet, and the bilinear mapping
// used to go from that quadrilateral to pixel coordinates.
package geom

import "math"

// Point is a 2-D point in image pixel space.
type Point struct {
	X, Y float64
}

// Corners holds the four corners of the marker-enclosed frame (or, for
// the document scanner, the paper quadrilateral before rectification).
type Corners struct {
	TL, TR, BL, BR Point
}

// Plausible reports whether c satisfies the geometric plausibility
// invariants required after successful localization: TL is left of TR,
// TL is above BL, and opposite-side length ratios are at least 0.85.
func (c Corners) Plausible() bool {
	if c.TL.X >= c.TR.X || c.TL.Y >= c.BL.Y {
		return false
	}
	topW := dist(c.TL, c.TR)
	botW := dist(c.BL, c.BR)
	leftH := dist(c.TL, c.BL)
	rightH := dist(c.TR, c.BR)
	return ratio(topW, botW) >= 0.85 && ratio(leftH, rightH) >= 0.85
}

func ratio(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a < b {
		return a / b
	}
	return b / a
}

func dist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

// FromBounds synthesizes Corners from an inset rectangle of width w and
// height h, inset by the given fraction of each dimension on every
// side. This is the fallback used whenever marker localization fails.
func FromBounds(w, h int, inset float64) Corners {
	ix := float64(w) * inset
	iy := float64(h) * inset
	return Corners{
		TL: Point{ix, iy},
		TR: Point{float64(w) - ix, iy},
		BL: Point{ix, float64(h) - iy},
		BR: Point{float64(w) - ix, float64(h) - iy},
	}
}

// Bilinear maps a normalized point (tx, ty) in [0,1]x[0,1] to a pixel
// coordinate inside the quadrilateral c, using bilinear interpolation
// over the four corners rather than a full projective homography:
//
//	top = TL + tx*(TR-TL)
//	bot = BL + tx*(BR-BL)
//	pixel = top + ty*(bot-top)
//
// This is exact when c is the true rectangle and the document is
// already rectified, and a stable approximation otherwise.
func Bilinear(c Corners, tx, ty float64) Point {
	top := lerp(c.TL, c.TR, tx)
	bot := lerp(c.BL, c.BR, tx)
	return lerp(top, bot, ty)
}

func lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}
