/*
NAME
  grayscale.go

DESCRIPTION
  grayscale.go converts an RGBA surface.Image to luma and applies a
  percentile contrast stretch so that later absolute thresholds are
  meaningful across varying lighting conditions.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package grayscale extracts luma from an RGBA image and normalizes its
// contrast via a percentile stretch, as described by the Grayscale &
// Normalization stage of the OMR pipeline.
package grayscale

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/scanmark/omr/surface"
)

// Luma weights, fixed per the printed-template calibration; changing
// these would shift every downstream absolute threshold.
const (
	wR = 0.299
	wG = 0.587
	wB = 0.114
)

// sampleTarget is the approximate number of luma values sampled when
// computing contrast-stretch percentiles.
const sampleTarget = 10000

// percentileLow and percentileHigh bound the contrast stretch; they
// reject isolated specular highlights and shadows.
const (
	percentileLow  = 0.02
	percentileHigh = 0.98
)

// ToGray converts im to luma using fixed weights, rounding half-up.
func ToGray(im *surface.Image) *surface.Gray {
	g := surface.NewGray(im.W, im.H)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			r, gr, b, _ := im.At(x, y)
			v := wR*float64(r) + wG*float64(gr) + wB*float64(b)
			g.Set(x, y, uint8(roundHalfUp(v)))
		}
	}
	return g
}

// roundHalfUp rounds v to the nearest integer, breaking ties upward.
func roundHalfUp(v float64) float64 {
	return float64(int64(v + 0.5))
}

// Normalize applies a percentile contrast stretch to g, returning a new
// Gray buffer. It samples approximately sampleTarget luma values at a
// uniform stride, takes the 2nd and 98th percentiles as gMin and gMax,
// and remaps every pixel into [0, 255] accordingly.
func Normalize(g *surface.Gray) *surface.Gray {
	gMin, gMax := contrastBounds(g)
	denom := float64(gMax - gMin)
	if denom < 1 {
		denom = 1
	}

	out := surface.NewGray(g.W, g.H)
	for i, v := range g.Pix {
		stretched := roundHalfUp((float64(v) - float64(gMin)) / denom * 255)
		out.Pix[i] = uint8(surface.Clamp(int(stretched), 0, 255))
	}
	return out
}

// contrastBounds samples g at a uniform stride and returns the 2nd and
// 98th percentile luma values, using gonum/stat.Quantile over the
// sorted sample (stat.Quantile expects the input sorted ascending).
func contrastBounds(g *surface.Gray) (lo, hi uint8) {
	n := len(g.Pix)
	if n == 0 {
		return 0, 255
	}
	stride := n / sampleTarget
	if stride < 1 {
		stride = 1
	}

	samples := make([]float64, 0, sampleTarget+1)
	for i := 0; i < n; i += stride {
		samples = append(samples, float64(g.Pix[i]))
	}
	sort.Float64s(samples)

	loVal := stat.Quantile(percentileLow, stat.Empirical, samples, nil)
	hiVal := stat.Quantile(percentileHigh, stat.Empirical, samples, nil)
	return uint8(surface.Clamp(int(loVal), 0, 255)), uint8(surface.Clamp(int(hiVal), 0, 255))
}

// MeanLuma returns the mean luma over the whole image, used by the
// camera-path adaptive threshold to size its brightness-proportional
// offset.
func MeanLuma(g *surface.Gray) float64 {
	if len(g.Pix) == 0 {
		return 0
	}
	vals := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		vals[i] = float64(v)
	}
	return stat.Mean(vals, nil)
}
