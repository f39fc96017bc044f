/*
NAME
  render.go

DESCRIPTION
  render.go paints synthetic bubble sheets for tests: a white page
  with the four corner alignment markers, the printed bubble outlines
  of a template layout, and any marked identifier digits or answer
  choices. It produces exactly the artwork the decoder expects, so
  round-trip tests need no external fixtures.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package render paints synthetic bubble sheets for the test suite:
// markers, bubble outlines and filled bubbles at the positions a
// template.Layout declares.
package render

import (
	"math"

	"github.com/scanmark/omr/coord"
	"github.com/scanmark/omr/geom"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
)

const (
	paperLuma = 255
	inkLuma   = 0

	// frameInset is the fraction of each image dimension between the
	// image edge and a marker centre.
	frameInset = 0.06

	// ringInnerFrac bounds the printed bubble outline: ink lies between
	// ringInnerFrac and 1.0 of the bubble radius, leaving the interior
	// clear for the sampling kernels.
	ringInnerFrac = 0.85

	// rimFrac is the width of the soft half-tone rim painted just
	// outside every ink region, imitating the edge gradient a real
	// scan always has. Without intermediate tones a two-valued image
	// degenerates the global threshold.
	rimFrac = 0.15
	rimLuma = 128
)

// Sheet is a synthetic bubble sheet under construction. NewSheet
// paints the blank artwork; Mark methods darken bubbles on it.
type Sheet struct {
	Im      *surface.Image
	Layout  template.Layout
	Choices int

	mapper coord.Mapper
}

// DefaultSize returns image dimensions whose aspect roughly matches
// the printed sheet for each template kind.
func DefaultSize(k template.Kind) (w, h int) {
	switch k {
	case template.Items20:
		return 900, 1060
	case template.Items50:
		return 560, 1300
	default:
		return 1000, 1100
	}
}

// NewSheet paints a blank w x h sheet for layout l with choices answer
// choices per question: white paper, four corner markers, and the
// outline ring of every bubble the layout declares.
func NewSheet(l template.Layout, choices, w, h int) *Sheet {
	im := surface.NewImage(w, h)
	for i := 0; i < len(im.Pix); i += 4 {
		im.Pix[i] = paperLuma
		im.Pix[i+1] = paperLuma
		im.Pix[i+2] = paperLuma
		im.Pix[i+3] = 255
	}

	s := &Sheet{
		Im:      im,
		Layout:  l,
		Choices: choices,
		mapper:  coord.NewMapper(geom.FromBounds(w, h, frameInset)),
	}
	s.paintMarkers()
	s.paintOutlines()
	return s
}

// Corners returns the frame corners (marker centres) the sheet was
// painted against.
func (s *Sheet) Corners() geom.Corners { return s.mapper.Corners }

// MarkID fills the digit bubble of every identifier column named by
// id, one rune per column.
func (s *Sheet) MarkID(id string) {
	for col, r := range id {
		if col >= s.Layout.ID.Columns || r < '0' || r > '9' {
			continue
		}
		s.MarkIDDigit(col, int(r-'0'))
	}
}

// MarkIDDigit fills the bubble at (col, row) of the identifier grid,
// both 0-based.
func (s *Sheet) MarkIDDigit(col, row int) {
	nx := s.Layout.ID.FirstNX + float64(col)*s.Layout.ID.ColSpacing
	ny := s.Layout.ID.FirstNY + float64(row)*s.Layout.ID.RowSpacing
	s.fillBubble(nx, ny)
}

// MarkAnswer fills choice (0-based) of question q (1-based).
func (s *Sheet) MarkAnswer(q, choice int) {
	block, row, ok := s.Layout.BlockFor(q)
	if !ok || choice < 0 || choice >= s.Choices {
		return
	}
	nx := block.FirstNX + float64(choice)*block.NXSpacing
	ny := block.FirstNY + float64(row)*block.NYSpacing
	s.fillBubble(nx, ny)
}

// markerSide matches the nominal candidate size the locator searches
// for, so a painted marker scores best at its true centre.
func (s *Sheet) markerSide() int {
	m := s.Im.W
	if s.Im.H < m {
		m = s.Im.H
	}
	side := int(math.Round(math.Max(10, float64(m)*0.035)))
	return side
}

func (s *Sheet) paintMarkers() {
	side := s.markerSide()
	c := s.mapper.Corners
	for _, p := range []geom.Point{c.TL, c.TR, c.BL, c.BR} {
		s.fillSquare(p, side)
	}
}

func (s *Sheet) fillSquare(center geom.Point, side int) {
	half := side / 2
	x0 := int(center.X) - half
	y0 := int(center.Y) - half
	for y := y0 - 2; y < y0+side+2; y++ {
		for x := x0 - 2; x < x0+side+2; x++ {
			if x >= x0 && x < x0+side && y >= y0 && y < y0+side {
				s.inkAt(x, y)
			} else {
				s.rimAt(x, y)
			}
		}
	}
}

func (s *Sheet) paintOutlines() {
	l := s.Layout
	for col := 0; col < l.ID.Columns; col++ {
		for row := 0; row < l.ID.Rows; row++ {
			nx := l.ID.FirstNX + float64(col)*l.ID.ColSpacing
			ny := l.ID.FirstNY + float64(row)*l.ID.RowSpacing
			s.paintBubble(nx, ny, ringInnerFrac, 1.0)
		}
	}
	for _, b := range l.Blocks {
		for q := b.StartQ; q <= b.EndQ; q++ {
			row := q - b.StartQ
			for c := 0; c < s.Choices; c++ {
				nx := b.FirstNX + float64(c)*b.NXSpacing
				ny := b.FirstNY + float64(row)*b.NYSpacing
				s.paintBubble(nx, ny, ringInnerFrac, 1.0)
			}
		}
	}
}

func (s *Sheet) fillBubble(nx, ny float64) {
	s.paintBubble(nx, ny, 0, 1.0)
}

// paintBubble inks every pixel whose normalized elliptical distance
// from the bubble centre lies in [innerFrac, outerFrac], with a soft
// half-tone rim just outside the ink.
func (s *Sheet) paintBubble(nx, ny, innerFrac, outerFrac float64) {
	rx, ry := s.bubbleRadii()
	p := s.mapper.ToPixel(coord.NormalizedPoint{NX: nx, NY: ny})

	reach := outerFrac + rimFrac
	x0 := int(math.Floor(p.X - rx*reach))
	x1 := int(math.Ceil(p.X + rx*reach))
	y0 := int(math.Floor(p.Y - ry*reach))
	y1 := int(math.Ceil(p.Y + ry*reach))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - p.X) / rx
			dy := (float64(y) - p.Y) / ry
			d := math.Sqrt(dx*dx + dy*dy)
			switch {
			case d >= innerFrac && d <= outerFrac:
				s.inkAt(x, y)
			case d > outerFrac && d <= reach:
				s.rimAt(x, y)
			}
		}
	}
}

// bubbleRadii mirrors the decoder's radius derivation so painted fills
// land exactly where the samplers look.
func (s *Sheet) bubbleRadii() (rx, ry float64) {
	c := s.mapper.Corners
	frameW := math.Hypot(c.TR.X-c.TL.X, c.TR.Y-c.TL.Y)
	frameH := math.Hypot(c.BL.X-c.TL.X, c.BL.Y-c.TL.Y)
	return s.Layout.BubbleDX * frameW / 2, s.Layout.BubbleDY * frameH / 2
}

func (s *Sheet) inkAt(x, y int) {
	if x < 0 || x >= s.Im.W || y < 0 || y >= s.Im.H {
		return
	}
	s.Im.Set(x, y, inkLuma, inkLuma, inkLuma, 255)
}

// rimAt writes the half-tone edge value, but never over ink already
// painted by a neighbouring bubble or marker.
func (s *Sheet) rimAt(x, y int) {
	if x < 0 || x >= s.Im.W || y < 0 || y >= s.Im.H {
		return
	}
	if r, _, _, _ := s.Im.At(x, y); r != paperLuma {
		return
	}
	s.Im.Set(x, y, rimLuma, rimLuma, rimLuma, 255)
}
