/*
NAME
  radius.go

DESCRIPTION
  radius.go converts a template's normalized bubble diameter into
  pixel-space ellipse radii for a given set of frame corners, the glue
  between the Template Registry and the Bubble Sampler.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package decode

import (
	"math"

	"github.com/scanmark/omr/geom"
	"github.com/scanmark/omr/template"
)

// bubbleRadii returns the pixel-space (rx, ry) radii of a layout's
// bubble_dx/bubble_dy, scaled by the frame's pixel extent along the
// corners' top edge and left edge respectively.
func bubbleRadii(c geom.Corners, l template.Layout) (rx, ry float64) {
	frameW := dist(c.TL, c.TR)
	frameH := dist(c.TL, c.BL)
	return l.BubbleDX * frameW / 2, l.BubbleDY * frameH / 2
}

func dist(a, b geom.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}
