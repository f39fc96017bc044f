/*
NAME
  scanner_test.go

DESCRIPTION
  scanner_test.go checks paper rectification, the pass-through
  fallback when no edges are found, and brightness equalization.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package scanner

import (
	"testing"

	"github.com/scanmark/omr/grayscale"
	"github.com/scanmark/omr/surface"
)

// paintPaper fills im with a dark background and a bright rectangular
// "paper" inset, simulating a handheld photo of a sheet on a desk.
func paintPaper(im *surface.Image, x0, y0, x1, y1 int) {
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			if x >= x0 && x < x1 && y >= y0 && y < y1 {
				im.Set(x, y, 230, 230, 230, 255)
			} else {
				im.Set(x, y, 20, 20, 20, 255)
			}
		}
	}
}

func TestScanRectifiesPaper(t *testing.T) {
	im := surface.NewImage(1000, 1200)
	paintPaper(im, 100, 150, 900, 1100)
	gray := grayscale.ToGray(im)

	res := Scan(im, gray)
	if !res.Scanned {
		t.Fatal("Scan() Scanned = false, want true")
	}
	if res.Image.W < minOutW || res.Image.H < minOutH {
		t.Errorf("output dims %dx%d below floors %dx%d", res.Image.W, res.Image.H, minOutW, minOutH)
	}
}

func TestScanPassesThroughWithoutEdges(t *testing.T) {
	im := surface.NewImage(1000, 1200)
	// Uniformly dark: no bright pixels anywhere, so edge scanning finds
	// nothing in any band.
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			im.Set(x, y, 10, 10, 10, 255)
		}
	}
	gray := grayscale.ToGray(im)

	res := Scan(im, gray)
	if res.Scanned {
		t.Fatal("Scan(no edges) Scanned = true, want false")
	}
	if res.Image != im {
		t.Error("Scan(no edges) should return the original image unchanged")
	}
}

func TestEqualizeBrightensDimPaper(t *testing.T) {
	im := surface.NewImage(64, 64)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			im.Set(x, y, 120, 120, 120, 255) // dim, uniformly lit paper
		}
	}
	equalize(im)
	r, _, _, _ := im.At(32, 32)
	if r < 200 {
		t.Errorf("equalize() left paper at %d, want brightened toward 250", r)
	}
}
