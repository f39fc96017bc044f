/*
NAME
  scanner.go

DESCRIPTION
  scanner.go is the Document Scanner: the camera-path-only stage that
  localizes the paper quadrilateral in a handheld photo, rectifies it
  to a flat, aspect-enforced rectangle, and equalizes brightness across
  the result. It is the sole crop and rectify path for camera-final
  decodes.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package scanner implements the Document Scanner pipeline stage:
// paper-edge localization, corner refinement, perspective warp and
// grid-local brightness equalization.
package scanner

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/scanmark/omr/geom"
	"github.com/scanmark/omr/grayscale"
	"github.com/scanmark/omr/surface"
)

const (
	numEdgeSamples  = 60
	edgeLumaThresh  = 160
	outerBandFrac   = 0.40
	minSamplesFound = 10 // below this, paper-edge localization is declared failed.

	cornerRefineFrac = 0.05
	outwardProbePx   = 5

	minOutW = 800
	minOutH = 1000

	equalizeCellSide = 32
	equalizeTarget    = 250
	equalizeFloor     = 100
)

// Result is the Document Scanner's output: a rectified, equalized
// replacement image, or the original image unchanged when paper edges
// could not be localized.
type Result struct {
	Image   *surface.Image
	Scanned bool
}

// Scan runs the Document Scanner over im using gray (im's luma,
// unnormalized; the caller supplies this so the percentile contrast
// stretch doesn't distort the raw edge-detection
// threshold of 160).
func Scan(im *surface.Image, gray *surface.Gray) Result {
	lefts, rights, tops, bottoms := scanEdges(gray)
	if len(lefts) < minSamplesFound || len(rights) < minSamplesFound ||
		len(tops) < minSamplesFound || len(bottoms) < minSamplesFound {
		return Result{Image: im, Scanned: false}
	}

	leftEdge := percentile(lefts, 0.30)
	rightEdge := percentile(rights, 0.70)
	topEdge := percentile(tops, 0.30)
	bottomEdge := percentile(bottoms, 0.70)

	corners := geom.Corners{
		TL: geom.Point{X: leftEdge, Y: topEdge},
		TR: geom.Point{X: rightEdge, Y: topEdge},
		BL: geom.Point{X: leftEdge, Y: bottomEdge},
		BR: geom.Point{X: rightEdge, Y: bottomEdge},
	}
	corners = refineCorners(gray, corners)

	outW, outH := outputSize(corners)
	warped := warp(im, corners, outW, outH)
	equalize(warped)

	return Result{Image: warped, Scanned: true}
}

// scanEdges samples numEdgeSamples evenly spaced rows and columns,
// searching the outer 40% bands for the first bright (luma >
// edgeLumaThresh) pixel.
func scanEdges(g *surface.Gray) (lefts, rights, tops, bottoms []float64) {
	leftBandEnd := int(float64(g.W) * outerBandFrac)
	rightBandStart := g.W - leftBandEnd
	topBandEnd := int(float64(g.H) * outerBandFrac)
	bottomBandStart := g.H - topBandEnd

	for i := 0; i < numEdgeSamples; i++ {
		y := i * g.H / numEdgeSamples
		if x, ok := firstBright(g, 0, leftBandEnd, y, true); ok {
			lefts = append(lefts, float64(x))
		}
		if x, ok := firstBright(g, rightBandStart, g.W, y, false); ok {
			rights = append(rights, float64(x))
		}
	}
	for i := 0; i < numEdgeSamples; i++ {
		x := i * g.W / numEdgeSamples
		if y, ok := firstBrightCol(g, 0, topBandEnd, x, true); ok {
			tops = append(tops, float64(y))
		}
		if y, ok := firstBrightCol(g, bottomBandStart, g.H, x, false); ok {
			bottoms = append(bottoms, float64(y))
		}
	}
	return lefts, rights, tops, bottoms
}

// firstBright scans row y from x0 to x1, returning the leftmost bright
// pixel x when fromLeft is true, otherwise the rightmost.
func firstBright(g *surface.Gray, x0, x1, y int, fromLeft bool) (int, bool) {
	if fromLeft {
		for x := x0; x < x1; x++ {
			if g.At(x, y) > edgeLumaThresh {
				return x, true
			}
		}
		return 0, false
	}
	for x := x1 - 1; x >= x0; x-- {
		if g.At(x, y) > edgeLumaThresh {
			return x, true
		}
	}
	return 0, false
}

// firstBrightCol scans column x from y0 to y1, returning the topmost
// bright pixel y when fromTop is true, otherwise the bottommost.
func firstBrightCol(g *surface.Gray, y0, y1, x int, fromTop bool) (int, bool) {
	if fromTop {
		for y := y0; y < y1; y++ {
			if g.At(x, y) > edgeLumaThresh {
				return y, true
			}
		}
		return 0, false
	}
	for y := y1 - 1; y >= y0; y-- {
		if g.At(x, y) > edgeLumaThresh {
			return y, true
		}
	}
	return 0, false
}

// percentile returns the given percentile of vals using gonum's
// empirical quantile; vals need not be pre-sorted.
func percentile(vals []float64, p float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// refineCorners searches a window of radius cornerRefineFrac*min(W,H)
// around each candidate corner for the pixel maximizing
// inner_luma-outer_luma along a 5px outward probe.
func refineCorners(g *surface.Gray, c geom.Corners) geom.Corners {
	radius := cornerRefineFrac * float64(minInt(g.W, g.H))
	return geom.Corners{
		TL: refineOne(g, c.TL, radius, -1, -1),
		TR: refineOne(g, c.TR, radius, 1, -1),
		BL: refineOne(g, c.BL, radius, -1, 1),
		BR: refineOne(g, c.BR, radius, 1, 1),
	}
}

func refineOne(g *surface.Gray, center geom.Point, radius, dirX, dirY float64) geom.Point {
	best := center
	bestDiff := math.Inf(-1)
	r := int(radius)
	step := 2
	if step > r && r > 0 {
		step = 1
	}
	if r == 0 {
		return center
	}
	for dy := -r; dy <= r; dy += step {
		for dx := -r; dx <= r; dx += step {
			cx := center.X + float64(dx)
			cy := center.Y + float64(dy)
			ox := cx + outwardProbePx*dirX
			oy := cy + outwardProbePx*dirY
			inner, ok1 := lumaAt(g, cx, cy)
			outer, ok2 := lumaAt(g, ox, oy)
			if !ok1 || !ok2 {
				continue
			}
			diff := inner - outer
			if diff > bestDiff {
				bestDiff = diff
				best = geom.Point{X: cx, Y: cy}
			}
		}
	}
	return best
}

func lumaAt(g *surface.Gray, x, y float64) (float64, bool) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= g.W || iy < 0 || iy >= g.H {
		return 0, false
	}
	return float64(g.At(ix, iy)), true
}

// outputSize computes the rectified output dimensions: width is the longer of the top/bottom edge lengths, floored
// at 800; height is the longer of the left/right edge lengths, floored
// at 1000.
func outputSize(c geom.Corners) (w, h int) {
	topLen := dist(c.TL, c.TR)
	botLen := dist(c.BL, c.BR)
	leftLen := dist(c.TL, c.BL)
	rightLen := dist(c.TR, c.BR)

	w = int(math.Max(minOutW, math.Max(topLen, botLen)))
	h = int(math.Max(minOutH, math.Max(leftLen, rightLen)))
	return w, h
}

func dist(a, b geom.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

// warp resamples src into an outW x outH image by mapping each output
// pixel through the bilinear quad defined by c and nearest-neighbour
// sampling the source.
func warp(src *surface.Image, c geom.Corners, outW, outH int) *surface.Image {
	out := surface.NewImage(outW, outH)
	for oy := 0; oy < outH; oy++ {
		ty := float64(oy) / float64(outH)
		for ox := 0; ox < outW; ox++ {
			tx := float64(ox) / float64(outW)
			p := geom.Bilinear(c, tx, ty)
			sx := surface.Clamp(int(math.Round(p.X)), 0, src.W-1)
			sy := surface.Clamp(int(math.Round(p.Y)), 0, src.H-1)
			r, g, b, a := src.At(sx, sy)
			out.Set(ox, oy, r, g, b, a)
		}
	}
	return out
}

// equalize partitions im into equalizeCellSide-px cells and scales
// each pixel's channels by 250/max(100, cell's 90th-percentile luma),
// clamped to 255. Scaling from the bright end
// of each cell makes paper white independent of illumination while
// preserving dark pencil marks.
func equalize(im *surface.Image) {
	gray := grayscale.ToGray(im)
	for cy := 0; cy < im.H; cy += equalizeCellSide {
		for cx := 0; cx < im.W; cx += equalizeCellSide {
			x1 := minInt(cx+equalizeCellSide, im.W)
			y1 := minInt(cy+equalizeCellSide, im.H)
			p90 := cellP90(gray, cx, cy, x1, y1)
			scale := equalizeTarget / math.Max(equalizeFloor, p90)
			scaleCell(im, cx, cy, x1, y1, scale)
		}
	}
}

func cellP90(g *surface.Gray, x0, y0, x1, y1 int) float64 {
	vals := make([]float64, 0, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			vals = append(vals, float64(g.At(x, y)))
		}
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	return stat.Quantile(0.90, stat.Empirical, vals, nil)
}

func scaleCell(im *surface.Image, x0, y0, x1, y1 int, scale float64) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, a := im.At(x, y)
			im.Set(x, y,
				scaleChan(r, scale),
				scaleChan(g, scale),
				scaleChan(b, scale),
				a)
		}
	}
}

func scaleChan(v uint8, scale float64) uint8 {
	return uint8(surface.Clamp(int(math.Round(float64(v)*scale)), 0, 255))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
