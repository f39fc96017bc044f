/*
NAME
  fills.go

DESCRIPTION
  fills.go samples every bubble of a template layout into fill-score
  grids. The Identifier and Answer Decoders consume these grids, and
  the diagnostic tooling plots them directly when calibrating template
  geometry.

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
	"github.com/scanmark/omr/coord"
	"github.com/scanmark/omr/sampler"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
)

// IDFills samples every identifier bubble of l, returning one slice of
// row fills per column.
func IDFills(m coord.Mapper, kind sampler.Kind, bin *surface.Binary, gray *surface.Gray, l template.Layout) [][]float64 {
	rx, ry := bubbleRadii(m.Corners, l)

	fills := make([][]float64, l.ID.Columns)
	for col := range fills {
		nx := l.ID.FirstNX + float64(col)*l.ID.ColSpacing
		colFills := make([]float64, l.ID.Rows)
		for row := range colFills {
			ny := l.ID.FirstNY + float64(row)*l.ID.RowSpacing
			px := m.ToPixel(coord.NormalizedPoint{NX: nx, NY: ny})
			colFills[row] = sampler.Sample(kind, bin, gray, sampler.Ellipse{CX: px.X, CY: px.Y, RX: rx, RY: ry})
		}
		fills[col] = colFills
	}
	return fills
}

// AnswerFills samples every answer bubble of l, returning one slice of
// choice fills per question, indexed by question-1.
func AnswerFills(m coord.Mapper, kind sampler.Kind, bin *surface.Binary, gray *surface.Gray, l template.Layout, choices int) [][]float64 {
	rx, ry := bubbleRadii(m.Corners, l)

	fills := make([][]float64, l.NumItems)
	for _, b := range l.Blocks {
		for q := b.StartQ; q <= b.EndQ; q++ {
			row := q - b.StartQ
			qFills := make([]float64, choices)
			for c := range qFills {
				nx := b.FirstNX + float64(c)*b.NXSpacing
				ny := b.FirstNY + float64(row)*b.NYSpacing
				px := m.ToPixel(coord.NormalizedPoint{NX: nx, NY: ny})
				qFills[c] = sampler.Sample(kind, bin, gray, sampler.Ellipse{CX: px.X, CY: px.Y, RX: rx, RY: ry})
			}
			fills[q-1] = qFills
		}
	}
	return fills
}
