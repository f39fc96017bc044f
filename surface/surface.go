/*
NAME
  surface.go

DESCRIPTION
  surface.go provides the canonical in-memory image buffer used by every
  stage of the OMR pipeline, along with the derived Gray, Binary and
  Integral buffers that later stages produce from it.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package surface provides the Image, Gray, Binary and Integral buffer
// types that every OMR pipeline stage operates on. Image is the only
// type that ever touches raw RGBA bytes; everything downstream works
// from the derived buffers.
package surface

import "fmt"

// MinWidth and MinHeight are the minimum accepted input dimensions.
// Anything smaller is rejected before any pipeline stage runs.
const (
	MinWidth  = 200
	MinHeight = 200
)

// Image is a canonical row-major RGBA buffer. It is conceptually
// immutable after acquisition: no pipeline stage mutates the input
// Image in place. The document scanner writes its warp into a new
// Image, and brightness equalization then rescales that new Image in
// place.
type Image struct {
	W, H int
	// Pix holds W*H*4 bytes, four bytes per pixel in R, G, B, A order,
	// row-major starting at the top-left corner.
	Pix []byte
}

// NewImage allocates a zeroed Image of the given dimensions.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]byte, w*h*4)}
}

// At returns the RGBA components of the pixel at (x, y). It panics if
// (x, y) is out of bounds, matching the "no operations beyond indexed
// pixel access" scope of the Image Surface.
func (im *Image) At(x, y int) (r, g, b, a uint8) {
	i := (y*im.W + x) * 4
	p := im.Pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// Set writes the RGBA components of the pixel at (x, y).
func (im *Image) Set(x, y int, r, g, b, a uint8) {
	i := (y*im.W + x) * 4
	p := im.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, b, a
}

// Validate enforces the minimum input dimensions required by the Image
// Surface. Every other stage assumes this has already been
// called.
func (im *Image) Validate() error {
	if im.W < MinWidth || im.H < MinHeight {
		return fmt.Errorf("%w: got %dx%d, need at least %dx%d", ErrInputTooSmall, im.W, im.H, MinWidth, MinHeight)
	}
	return nil
}

// Gray is a dense W×H array of 8-bit luma values, derived from an
// Image. Invariant: it shares W×H with the Image it was derived from.
type Gray struct {
	W, H int
	Pix  []uint8
}

// NewGray allocates a zeroed Gray buffer of the given dimensions.
func NewGray(w, h int) *Gray {
	return &Gray{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the luma value at (x, y).
func (g *Gray) At(x, y int) uint8 { return g.Pix[y*g.W+x] }

// Set writes the luma value at (x, y).
func (g *Gray) Set(x, y int, v uint8) { g.Pix[y*g.W+x] = v }

// Clamp restricts x to the [lo, hi] image bound, used pervasively by
// the window-clipping arithmetic in thresholding and marker search.
func Clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Binary is a dense W×H array of {0,1} values, where 1 means "ink".
// Invariant: it shares W×H with the Gray it was derived from.
type Binary struct {
	W, H int
	Pix  []uint8
}

// NewBinary allocates a zeroed Binary buffer of the given dimensions.
func NewBinary(w, h int) *Binary {
	return &Binary{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns 1 if the pixel at (x, y) is ink, 0 otherwise.
func (b *Binary) At(x, y int) uint8 { return b.Pix[y*b.W+x] }

// Set marks the pixel at (x, y) as ink (v=1) or background (v=0).
func (b *Binary) Set(x, y int, v uint8) { b.Pix[y*b.W+x] = v }

// Integral is a dense W×H array of 64-bit prefix sums over a Gray
// buffer, used for O(1) windowed-mean lookups by the adaptive
// threshold. Integral[y][x] is the sum of all Gray values with
// row <= y and column <= x (inclusive), using a one-pixel implicit
// zero border so that Sum never needs a special case at the edges.
type Integral struct {
	W, H int
	// Sum has (W+1)*(H+1) entries: Sum[(y+1)*(W+1)+(x+1)] is the prefix
	// sum up to and including (x, y).
	Sum []int64
}

// NewIntegral computes the integral image of g.
func NewIntegral(g *Gray) *Integral {
	w, h := g.W, g.H
	stride := w + 1
	sum := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(g.At(x, y))
			sum[(y+1)*stride+(x+1)] = sum[y*stride+(x+1)] + rowSum
		}
	}
	return &Integral{W: w, H: h, Sum: sum}
}

// RectSum returns the sum of Gray values in the inclusive rectangle
// [x0,x1] x [y0,y1], after clipping the rectangle to the image bounds.
func (in *Integral) RectSum(x0, y0, x1, y1 int) int64 {
	x0 = Clamp(x0, 0, in.W-1)
	x1 = Clamp(x1, 0, in.W-1)
	y0 = Clamp(y0, 0, in.H-1)
	y1 = Clamp(y1, 0, in.H-1)
	stride := in.W + 1
	a := in.Sum[y0*stride+x0]
	b := in.Sum[y0*stride+(x1+1)]
	c := in.Sum[(y1+1)*stride+x0]
	d := in.Sum[(y1+1)*stride+(x1+1)]
	return d - b - c + a
}

// Mean returns the mean Gray value in the inclusive rectangle
// [x0,x1] x [y0,y1].
func (in *Integral) Mean(x0, y0, x1, y1 int) float64 {
	x0c := Clamp(x0, 0, in.W-1)
	x1c := Clamp(x1, 0, in.W-1)
	y0c := Clamp(y0, 0, in.H-1)
	y1c := Clamp(y1, 0, in.H-1)
	area := int64(x1c-x0c+1) * int64(y1c-y0c+1)
	if area <= 0 {
		return 0
	}
	return float64(in.RectSum(x0, y0, x1, y1)) / float64(area)
}
