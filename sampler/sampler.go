/*
NAME
  sampler.go

DESCRIPTION
  sampler.go is the Bubble Sampler: two interchangeable kernels that
  turn a pixel-space ellipse into a FillScore in [0,1]: a binary
  fill-ratio kernel for uploads and scanned images, and a grayscale
  local-contrast kernel for camera images after document scanning.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package sampler implements the two Bubble Sampler kernels: a binary
// fill-ratio sampler and a grayscale local-contrast sampler, both
// evaluated over a pixel-space ellipse centred on a mapped bubble.
package sampler

import (
	"math"

	"github.com/scanmark/omr/surface"
)

// Kind selects which sampler kernel a Bubble should use. The
// orchestrator chooses Binary for the Upload path, which samples the
// binarized image, and Gray for the CameraFinal path, which samples
// the normalized grayscale image after document scanning. Kept as a plain enum rather than an
// interface so the inner sampling loops stay monomorphic.
type Kind int

const (
	Binary Kind = iota
	Gray
)

// Ellipse is a pixel-space sampling region: a centre and two radii.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
}

// scale returns an Ellipse with both radii multiplied by f.
func (e Ellipse) scale(f float64) Ellipse {
	return Ellipse{CX: e.CX, CY: e.CY, RX: e.RX * f, RY: e.RY * f}
}

// step returns the sampling grid step for e: max(1, min(rx,ry)/6).
func (e Ellipse) step() float64 {
	m := math.Min(e.RX, e.RY)
	return math.Max(1, m/6)
}

// eachPoint calls f for every (x,y) on e's sampling grid that falls
// inside the ellipse. Points outside the source buffer are skipped by
// f itself via its bounds check, mirroring how the integral image
// clips rather than panics.
func (e Ellipse) eachPoint(f func(x, y int)) {
	st := e.step()
	if e.RX <= 0 || e.RY <= 0 {
		return
	}
	for dy := -e.RY; dy <= e.RY; dy += st {
		for dx := -e.RX; dx <= e.RX; dx += st {
			if (dx*dx)/(e.RX*e.RX)+(dy*dy)/(e.RY*e.RY) > 1 {
				continue
			}
			f(int(math.Round(e.CX+dx)), int(math.Round(e.CY+dy)))
		}
	}
}

// SampleBinary evaluates the ellipse (scaled 0.75)
// against a Binary image, returning the fraction of sampled pixels
// whose value is 1 ("ink"). Used by the binary sampler on uploads and
// scanned images.
func SampleBinary(b *surface.Binary, e Ellipse) float64 {
	inner := e.scale(0.75)
	var total, ink int
	inner.eachPoint(func(x, y int) {
		if x < 0 || x >= b.W || y < 0 || y >= b.H {
			return
		}
		total++
		if b.At(x, y) == 1 {
			ink++
		}
	})
	if total == 0 {
		return 0
	}
	return float64(ink) / float64(total)
}

// offBubbleOffsets are the six off-bubble probe offsets, expressed as
// multiples of (rx, ry): one above, one below, and
// four diagonals, chosen to avoid adjacent bubbles in the dense
// 100-item layout.
var offBubbleOffsets = []struct{ fx, fy float64 }{
	{0, -1.6},
	{0, 1.6},
	{1.4, -1.0},
	{1.4, 1.0},
	{-1.4, -1.0},
	{-1.4, 1.0},
}

// SampleGray evaluates the grayscale local-contrast kernel: an inner
// ellipse (scaled 0.5) gives innerMean; six off-bubble patches (radius
// max(2, min(rx,ry)*0.30)) give outerMean; the score is
// max(0, (outerMean-innerMean)/outerMean) when outerMean > 10, else 0.
// Used by the grayscale sampler on camera images after scanning.
func SampleGray(g *surface.Gray, e Ellipse) float64 {
	inner := e.scale(0.5)
	innerMean := meanLuma(g, inner)

	patchR := math.Max(2, math.Min(e.RX, e.RY)*0.30)
	var sum float64
	var n int
	for _, off := range offBubbleOffsets {
		patch := Ellipse{
			CX: e.CX + off.fx*e.RX,
			CY: e.CY + off.fy*e.RY,
			RX: patchR, RY: patchR,
		}
		m, cnt := meanLumaCount(g, patch)
		if cnt == 0 {
			continue
		}
		sum += m * float64(cnt)
		n += cnt
	}
	if n == 0 {
		return 0
	}
	outerMean := sum / float64(n)
	if outerMean <= 10 {
		return 0
	}
	score := (outerMean - innerMean) / outerMean
	if score < 0 {
		return 0
	}
	return score
}

func meanLuma(g *surface.Gray, e Ellipse) float64 {
	m, _ := meanLumaCount(g, e)
	return m
}

func meanLumaCount(g *surface.Gray, e Ellipse) (mean float64, count int) {
	var sum int64
	e.eachPoint(func(x, y int) {
		if x < 0 || x >= g.W || y < 0 || y >= g.H {
			return
		}
		sum += int64(g.At(x, y))
		count++
	})
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

// Sample dispatches to SampleBinary or SampleGray by kind, using the
// appropriate source buffer. Exactly one of bin or gr should be
// relevant to the chosen kind; the orchestrator only ever has the
// buffer its chosen path produced.
func Sample(kind Kind, bin *surface.Binary, gr *surface.Gray, e Ellipse) float64 {
	switch kind {
	case Binary:
		return SampleBinary(bin, e)
	case Gray:
		return SampleGray(gr, e)
	default:
		return 0
	}
}
