/*
NAME
  coord_test.go

DESCRIPTION
  coord_test.go checks the normalized-to-pixel mapping against known
  corner quadrilaterals.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package coord

import (
	"testing"

	"github.com/scanmark/omr/geom"
)

func TestToPixelCorners(t *testing.T) {
	c := geom.Corners{
		TL: geom.Point{X: 0, Y: 0},
		TR: geom.Point{X: 100, Y: 0},
		BL: geom.Point{X: 0, Y: 200},
		BR: geom.Point{X: 100, Y: 200},
	}
	m := NewMapper(c)

	cases := []struct {
		p    NormalizedPoint
		want geom.Point
	}{
		{NormalizedPoint{0, 0}, geom.Point{X: 0, Y: 0}},
		{NormalizedPoint{1, 0}, geom.Point{X: 100, Y: 0}},
		{NormalizedPoint{0, 1}, geom.Point{X: 0, Y: 200}},
		{NormalizedPoint{1, 1}, geom.Point{X: 100, Y: 200}},
		{NormalizedPoint{0.5, 0.5}, geom.Point{X: 50, Y: 100}},
	}
	for _, c := range cases {
		got := m.ToPixel(c.p)
		if got != c.want {
			t.Errorf("ToPixel(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}
