/*
NAME
  surface_test.go

DESCRIPTION
  surface_test.go checks buffer dimension validation, pixel access
  and integral-image windowed sums.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package surface

import (
	"errors"
	"testing"
)

func TestImageValidate(t *testing.T) {
	cases := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"too small both dims", 100, 100, true},
		{"too small width", 100, 300, true},
		{"too small height", 300, 100, true},
		{"minimum accepted", MinWidth, MinHeight, false},
		{"well formed", 1024, 768, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			im := NewImage(c.w, c.h)
			err := im.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
			if c.wantErr && !errors.Is(err, ErrInputTooSmall) {
				t.Fatalf("Validate() error = %v, want wrapped ErrInputTooSmall", err)
			}
		})
	}
}

func TestImageAtSet(t *testing.T) {
	im := NewImage(4, 4)
	im.Set(1, 2, 10, 20, 30, 255)
	r, g, b, a := im.At(1, 2)
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Fatalf("At(1,2) = %d,%d,%d,%d, want 10,20,30,255", r, g, b, a)
	}
}

func TestIntegralRectSum(t *testing.T) {
	g := NewGray(3, 3)
	// 1 2 3
	// 4 5 6
	// 7 8 9
	vals := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.Set(x, y, vals[y*3+x])
		}
	}
	in := NewIntegral(g)

	full := in.RectSum(0, 0, 2, 2)
	if full != 45 {
		t.Fatalf("RectSum(full) = %d, want 45", full)
	}

	topLeft2x2 := in.RectSum(0, 0, 1, 1)
	if topLeft2x2 != 1+2+4+5 {
		t.Fatalf("RectSum(top-left 2x2) = %d, want %d", topLeft2x2, 1+2+4+5)
	}

	singlePixel := in.RectSum(2, 2, 2, 2)
	if singlePixel != 9 {
		t.Fatalf("RectSum(single) = %d, want 9", singlePixel)
	}
}

func TestIntegralMeanClipsToBounds(t *testing.T) {
	g := NewGray(2, 2)
	g.Set(0, 0, 10)
	g.Set(1, 0, 20)
	g.Set(0, 1, 30)
	g.Set(1, 1, 40)
	in := NewIntegral(g)

	// A window that overruns the image bounds on every side should clip
	// rather than panic, and should equal the full-image mean.
	mean := in.Mean(-5, -5, 5, 5)
	want := (10.0 + 20.0 + 30.0 + 40.0) / 4.0
	if mean != want {
		t.Fatalf("Mean(oversized window) = %v, want %v", mean, want)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		x, lo, hi, want int
	}{
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{5, 0, 10, 5},
	}
	for _, c := range cases {
		if got := Clamp(c.x, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d) = %d, want %d", c.x, c.lo, c.hi, got, c.want)
		}
	}
}

func BenchmarkNewIntegral(b *testing.B) {
	g := NewGray(1000, 1200)
	for i := range g.Pix {
		g.Pix[i] = uint8(i % 256)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewIntegral(g)
	}
}
