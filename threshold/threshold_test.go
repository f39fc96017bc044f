/*
NAME
  threshold_test.go

DESCRIPTION
  threshold_test.go checks the Otsu threshold and both adaptive
  binarizers.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package threshold

import (
	"testing"

	"github.com/scanmark/omr/surface"
)

func bimodalGray(w, h int, darkVal, lightVal uint8) *surface.Gray {
	g := surface.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				g.Set(x, y, darkVal)
			} else {
				g.Set(x, y, lightVal)
			}
		}
	}
	return g
}

func TestOtsuBimodal(t *testing.T) {
	g := bimodalGray(400, 400, 20, 220)
	got := Otsu(g)
	if got < 20 || got > 220 {
		t.Fatalf("Otsu() = %d, want a threshold between the two modes", got)
	}
}

func TestOtsuUniformImage(t *testing.T) {
	g := surface.NewGray(50, 50)
	for i := range g.Pix {
		g.Pix[i] = 128
	}
	// A single-valued histogram should not panic and should return
	// deterministically.
	got1 := Otsu(g)
	got2 := Otsu(g)
	if got1 != got2 {
		t.Fatalf("Otsu() not deterministic: %d vs %d", got1, got2)
	}
}

func TestAdaptiveUploadMarksDarkRegion(t *testing.T) {
	g := surface.NewGray(300, 300)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.Set(x, y, 230) // bright paper
		}
	}
	// Paint a dark bubble in the middle, smaller than the local
	// window, with the soft edge tone a real scan has.
	for y := 139; y < 151; y++ {
		for x := 139; x < 151; x++ {
			g.Set(x, y, 125)
		}
	}
	for y := 140; y < 150; y++ {
		for x := 140; x < 150; x++ {
			g.Set(x, y, 20)
		}
	}
	otsu := Otsu(g)
	bin := AdaptiveUpload(g, otsu)

	if bin.At(145, 145) != 1 {
		t.Fatalf("dark bubble pixel not marked as ink")
	}
	if bin.At(10, 10) != 0 {
		t.Fatalf("bright paper pixel incorrectly marked as ink")
	}
}

func TestAdaptiveCameraMarksDarkRegion(t *testing.T) {
	g := surface.NewGray(300, 300)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.Set(x, y, 200)
		}
	}
	for y := 140; y < 160; y++ {
		for x := 140; x < 160; x++ {
			g.Set(x, y, 10)
		}
	}
	mean := 200.0
	bin := AdaptiveCamera(g, mean)

	if bin.At(150, 150) != 1 {
		t.Fatalf("dark bubble pixel not marked as ink under camera path")
	}
	if bin.At(10, 10) != 0 {
		t.Fatalf("bright paper pixel incorrectly marked as ink under camera path")
	}
}

func TestHalfBlockSizing(t *testing.T) {
	if got := halfBlockUpload(4000, 2000); got != 50 {
		t.Fatalf("halfBlockUpload(4000,2000) = %d, want 50", got)
	}
	if got := halfBlockUpload(100, 100); got != 8 {
		t.Fatalf("halfBlockUpload(100,100) = %d, want floor of 8", got)
	}
	if got := halfBlockCamera(4000, 2000); got != 100 {
		t.Fatalf("halfBlockCamera(4000,2000) = %d, want 100", got)
	}
	if got := halfBlockCamera(100, 100); got != 15 {
		t.Fatalf("halfBlockCamera(100,100) = %d, want floor of 15", got)
	}
}

func BenchmarkOtsu(b *testing.B) {
	g := bimodalGray(1000, 1200, 20, 220)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Otsu(g)
	}
}

func BenchmarkAdaptiveUpload(b *testing.B) {
	g := bimodalGray(1000, 1200, 20, 220)
	otsu := Otsu(g)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AdaptiveUpload(g, otsu)
	}
}

func BenchmarkAdaptiveCamera(b *testing.B) {
	g := bimodalGray(1000, 1200, 20, 220)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AdaptiveCamera(g, 120)
	}
}
