/*
NAME
  marker.go

DESCRIPTION
  marker.go is the Marker Locator: it searches the four corners of the
  paper area for the dense dark alignment squares printed there,
  validates their geometric plausibility, and reports the four marker
  centres as pixel-space corners.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package marker locates the four black alignment squares printed at
// the corners of a bubble sheet.
package marker

import (
	"math"

	"github.com/scanmark/omr/config"
	"github.com/scanmark/omr/geom"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
)

// Bounds is a pixel-space rectangle identifying the paper area to
// search within; when the document scanner or paper-edge detection
// has not run, callers pass the full image bounds.
type Bounds struct {
	X0, Y0, X1, Y1 int
}

func (b Bounds) w() int { return b.X1 - b.X0 }
func (b Bounds) h() int { return b.Y1 - b.Y0 }

// FullImage returns Bounds covering the whole of im.
func FullImage(w, h int) Bounds {
	return Bounds{X0: 0, Y0: 0, X1: w, Y1: h}
}

// corner identifies one of the four search regions.
type corner int

const (
	cornerTL corner = iota
	cornerTR
	cornerBL
	cornerBR
)

// candidate is the best-scoring patch found in one corner's search
// region.
type candidate struct {
	cx, cy  float64 // patch centre, pixel space
	s       float64 // patch side
	density float64
}

// Result is the outcome of locating all four markers.
type Result struct {
	TL, TR, BL, BR geom.Point
	Densities      [4]float64 // TL, TR, BL, BR order
	Found          bool
}

// SearchFraction resolves the per-corner search-region side fraction
// for a given profile and template kind. The 100-item template always
// uses 0.25 regardless of source; every other combination uses the
// profile's path default (0.30 upload, 0.35 live preview, 0.30
// camera-final).
func SearchFraction(p config.MarkerParams, kind template.Kind) float64 {
	if kind == template.Items100 {
		return 0.25
	}
	return p.SearchFraction
}

// Locate searches the four corners of paper (a Bounds in bin's pixel
// space) for dense dark squares, optionally rejecting candidates whose
// surrounding ring sits on dim background when gray is non-nil and
// params.RejectDimRing is set. It always returns four corners; on
// validation failure Found is false and callers substitute synthesized
// corners.
func Locate(bin *surface.Binary, gray *surface.Gray, paper Bounds, params config.MarkerParams) Result {
	searchSide := params.SearchFraction * float64(minInt(paper.w(), paper.h()))
	s0 := math.Max(10, float64(minInt(paper.w(), paper.h()))*0.035)

	tl := searchCorner(bin, gray, paper, cornerTL, searchSide, s0, params)
	tr := searchCorner(bin, gray, paper, cornerTR, searchSide, s0, params)
	bl := searchCorner(bin, gray, paper, cornerBL, searchSide, s0, params)
	br := searchCorner(bin, gray, paper, cornerBR, searchSide, s0, params)

	res := Result{
		TL:        geom.Point{X: tl.cx, Y: tl.cy},
		TR:        geom.Point{X: tr.cx, Y: tr.cy},
		BL:        geom.Point{X: bl.cx, Y: bl.cy},
		BR:        geom.Point{X: br.cx, Y: br.cy},
		Densities: [4]float64{tl.density, tr.density, bl.density, br.density},
	}
	res.Found = validate(res, params.MinDensity)
	return res
}

// validate checks the geometric-plausibility invariants after
// localization: every density at or above the minimum, opposite-side ratios at
// least 0.85, and overall aspect within (0.5, 2.0).
func validate(r Result, minDensity float64) bool {
	for _, d := range r.Densities {
		if d < minDensity {
			return false
		}
	}
	c := geom.Corners{TL: r.TL, TR: r.TR, BL: r.BL, BR: r.BR}
	if !c.Plausible() {
		return false
	}
	topW := dist(r.TL, r.TR)
	botW := dist(r.BL, r.BR)
	leftH := dist(r.TL, r.BL)
	rightH := dist(r.TR, r.BR)
	if leftH+rightH == 0 {
		return false
	}
	aspect := (topW + botW) / (leftH + rightH)
	return aspect > 0.5 && aspect < 2.0
}

// searchCorner scans one corner's search rectangle for the
// best-density candidate patch across the four candidate sizes.
func searchCorner(bin *surface.Binary, gray *surface.Gray, paper Bounds, c corner, searchSide, s0 float64, params config.MarkerParams) candidate {
	rx0, ry0, rx1, ry1 := searchRect(paper, c, searchSide)
	sizes := []float64{0.7 * s0, s0, 1.3 * s0, 1.6 * s0}

	gridStep := math.Max(2, s0/4)
	var best candidate
	for _, s := range sizes {
		subStep := math.Max(1, s/4)
		for y := ry0; y <= ry1-s; y += gridStep {
			for x := rx0; x <= rx1-s; x += gridStep {
				d := patchDensity(bin, x, y, s, subStep)
				if gray != nil && params.RejectDimRing && !ringIsBright(gray, x+s/2, y+s/2, s, params.RingLumaMin) {
					continue
				}
				if d > best.density {
					best = candidate{cx: x + s/2, cy: y + s/2, s: s, density: d}
				}
			}
		}
	}
	return best
}

func searchRect(paper Bounds, c corner, side float64) (x0, y0, x1, y1 float64) {
	switch c {
	case cornerTL:
		return float64(paper.X0), float64(paper.Y0), float64(paper.X0) + side, float64(paper.Y0) + side
	case cornerTR:
		return float64(paper.X1) - side, float64(paper.Y0), float64(paper.X1), float64(paper.Y0) + side
	case cornerBL:
		return float64(paper.X0), float64(paper.Y1) - side, float64(paper.X0) + side, float64(paper.Y1)
	default: // cornerBR
		return float64(paper.X1) - side, float64(paper.Y1) - side, float64(paper.X1), float64(paper.Y1)
	}
}

// patchDensity returns the fraction of ink pixels in the s x s patch
// with top-left (x, y), subsampled by step.
func patchDensity(bin *surface.Binary, x, y, s, step float64) float64 {
	var total, ink int
	for py := y; py < y+s; py += step {
		for px := x; px < x+s; px += step {
			ix, iy := int(px), int(py)
			if ix < 0 || ix >= bin.W || iy < 0 || iy >= bin.H {
				continue
			}
			total++
			if bin.At(ix, iy) == 1 {
				ink++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(ink) / float64(total)
}

// ringIsBright checks the mean luma of 8 probe points at distance
// 1.5*s around (cx, cy), rejecting candidates that sit on a shadow or
// table edge rather than bright paper.
func ringIsBright(gray *surface.Gray, cx, cy, s, minLuma float64) bool {
	r := 1.5 * s
	var sum float64
	var n int
	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		px := int(cx + r*math.Cos(angle))
		py := int(cy + r*math.Sin(angle))
		if px < 0 || px >= gray.W || py < 0 || py >= gray.H {
			continue
		}
		sum += float64(gray.At(px, py))
		n++
	}
	if n == 0 {
		return true
	}
	return sum/float64(n) >= minLuma
}

func dist(a, b geom.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
