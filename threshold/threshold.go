/*
NAME
  threshold.go

DESCRIPTION
  threshold.go implements the two thresholding techniques the OMR
  pipeline depends on: a single global Otsu threshold, and an
  integral-image-backed local adaptive threshold tuned separately for
  the upload and camera pipeline paths.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package threshold implements Otsu global thresholding and
// integral-image adaptive local thresholding, binarizing a surface.Gray
// into a surface.Binary where 1 means "ink".
package threshold

import (
	"math"

	"github.com/scanmark/omr/surface"
)

// Otsu computes the global Otsu threshold over g's luma histogram,
// maximizing between-class variance in one pass. Ties are broken
// toward the lower threshold.
func Otsu(g *surface.Gray) uint8 {
	var hist [256]int
	for _, v := range g.Pix {
		hist[v]++
	}
	total := len(g.Pix)
	if total == 0 {
		return 0
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i * c)
	}

	var sumB, wB float64
	wF := float64(total)
	var best float64 = -1
	var bestT uint8

	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF -= float64(hist[t])
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / wB
		mF := (sumAll - sumB) / wF

		variance := wB * wF * (mB - mF) * (mB - mF)
		if variance > best {
			best = variance
			bestT = uint8(t)
		}
	}
	return bestT
}

// halfBlockUpload and halfBlockCamera compute the adaptive-threshold
// window radius for each path: the larger window and
// proportional offset on the camera path absorb uneven phone lighting.
func halfBlockUpload(w, h int) int {
	return maxInt(8, minInt(w, h)/40)
}

func halfBlockCamera(w, h int) int {
	return maxInt(15, minInt(w, h)/20)
}

// AdaptiveUpload binarizes g for the upload path: a pixel is ink iff
// its luma is below both the local windowed mean minus 8 and the Otsu
// threshold (Otsu acts as an upper cap on the adaptive threshold).
func AdaptiveUpload(g *surface.Gray, otsu uint8) *surface.Binary {
	half := halfBlockUpload(g.W, g.H)
	in := surface.NewIntegral(g)
	out := surface.NewBinary(g.W, g.H)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			localMean := in.Mean(x-half, y-half, x+half, y+half)
			upperBound := math.Min(float64(otsu), localMean-8)
			if float64(g.At(x, y)) < upperBound {
				out.Set(x, y, 1)
			}
		}
	}
	return out
}

// AdaptiveCamera binarizes g for the camera path: the window is wider
// and the offset scales with overall brightness rather than being
// capped by Otsu, absorbing uneven illumination from handheld photos.
func AdaptiveCamera(g *surface.Gray, meanBrightness float64) *surface.Binary {
	half := halfBlockCamera(g.W, g.H)
	offset := math.Max(5, math.Floor(meanBrightness*0.06))
	in := surface.NewIntegral(g)
	out := surface.NewBinary(g.W, g.H)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			localMean := in.Mean(x-half, y-half, x+half, y+half)
			if float64(g.At(x, y)) < localMean-offset {
				out.Set(x, y, 1)
			}
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
