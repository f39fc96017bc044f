/*
NAME
  coord.go

DESCRIPTION
  coord.go is the Coordinate Mapper: it turns a NormalizedPoint on the
  printed sheet, expressed as fractions of the marker-enclosed frame,
  into an image pixel coordinate. The mapping itself is geom.Bilinear;
  this package exists as its own pipeline stage,
  giving the domain vocabulary (NormalizedPoint, frame corners) its own
  home separate from the generic quadrilateral math in geom.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package coord maps normalized template coordinates to image pixel
// coordinates via the four marker corners.
package coord

import "github.com/scanmark/omr/geom"

// NormalizedPoint is a point on the printed sheet expressed as
// fractions of the marker-enclosed frame: (0,0) is TL, (1,0) is TR,
// (0,1) is BL, (1,1) is BR.
type NormalizedPoint struct {
	NX, NY float64
}

// Mapper maps NormalizedPoints to pixel coordinates for one decode
// invocation's Corners. It holds no state beyond the corners
// themselves; constructing one is cheap.
type Mapper struct {
	Corners geom.Corners
}

// NewMapper returns a Mapper for the given frame corners.
func NewMapper(c geom.Corners) Mapper {
	return Mapper{Corners: c}
}

// ToPixel maps a NormalizedPoint to a pixel coordinate via bilinear
// interpolation over the quadrilateral. This is exact
// when the corners are the true rectangle corners of an already
// rectified document, and a stable approximation otherwise.
func (m Mapper) ToPixel(p NormalizedPoint) geom.Point {
	return geom.Bilinear(m.Corners, p.NX, p.NY)
}
