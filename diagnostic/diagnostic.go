/*
NAME
  diagnostic.go

DESCRIPTION
  diagnostic.go renders an annotated copy of a decoded sheet: frame
  corner boxes, the sampling region of every bubble, and fill-score
  labels. The overlay is the first thing to look at when a template's
  bubble geometry drifts against the printed artwork.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package diagnostic draws decode internals onto an annotated image
// copy for calibration and debugging.
package diagnostic

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/scanmark/omr/coord"
	"github.com/scanmark/omr/geom"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
)

var (
	cornerColor = color.RGBA{R: 230, A: 255}
	markedColor = color.RGBA{R: 230, G: 60, A: 255}
	bubbleColor = color.RGBA{B: 230, G: 120, A: 255}
	labelColor  = color.RGBA{R: 200, B: 40, A: 255}
)

// labelMin is the lowest fill score worth printing a label for;
// anything below it is visual noise on a dense sheet.
const labelMin = 0.05

// markedMin is the fill score at which a bubble's box is drawn in the
// marked colour rather than the outline colour.
const markedMin = 0.5

const cornerBoxSide = 12

// Annotate returns an annotated copy of im for layout l: a box at each
// frame corner, a box around every bubble's sampling region, and a
// zero-padded percentage label (at least two digits, "100" for a full
// fill) beside every bubble whose fill score is
// worth reading. idFills and answerFills are the grids produced by
// decode.IDFills and decode.AnswerFills; either may be nil to skip
// that overlay.
func Annotate(im *surface.Image, c geom.Corners, l template.Layout, choices int, idFills, answerFills [][]float64) *image.RGBA {
	out := surface.ToImage(im)
	m := coord.NewMapper(c)
	rx, ry := bubbleRadii(c, l)

	for _, p := range []geom.Point{c.TL, c.TR, c.BL, c.BR} {
		drawBox(out, p, cornerBoxSide, cornerBoxSide, cornerColor)
	}

	if idFills != nil {
		for col, colFills := range idFills {
			nx := l.ID.FirstNX + float64(col)*l.ID.ColSpacing
			for row, f := range colFills {
				ny := l.ID.FirstNY + float64(row)*l.ID.RowSpacing
				annotateBubble(out, m, nx, ny, rx, ry, f)
			}
		}
	}

	if answerFills != nil {
		for _, b := range l.Blocks {
			for q := b.StartQ; q <= b.EndQ; q++ {
				if q-1 >= len(answerFills) || answerFills[q-1] == nil {
					continue
				}
				row := q - b.StartQ
				for ch := 0; ch < choices && ch < len(answerFills[q-1]); ch++ {
					nx := b.FirstNX + float64(ch)*b.NXSpacing
					ny := b.FirstNY + float64(row)*b.NYSpacing
					annotateBubble(out, m, nx, ny, rx, ry, answerFills[q-1][ch])
				}
			}
		}
	}

	return out
}

func annotateBubble(out *image.RGBA, m coord.Mapper, nx, ny, rx, ry, fill float64) {
	p := m.ToPixel(coord.NormalizedPoint{NX: nx, NY: ny})
	col := bubbleColor
	if fill >= markedMin {
		col = markedColor
	}
	drawBox(out, p, int(2*rx), int(2*ry), col)
	if fill >= labelMin {
		drawLabel(out, int(p.X+rx)+2, int(p.Y+ry), fmt.Sprintf("%02d", int(math.Round(fill*100))))
	}
}

// drawBox outlines a w x h box centred on p.
func drawBox(out *image.RGBA, p geom.Point, w, h int, col color.RGBA) {
	x0 := int(p.X) - w/2
	y0 := int(p.Y) - h/2
	x1 := x0 + w
	y1 := y0 + h
	for x := x0; x <= x1; x++ {
		setIfInside(out, x, y0, col)
		setIfInside(out, x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		setIfInside(out, x0, y, col)
		setIfInside(out, x1, y, col)
	}
}

func setIfInside(out *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(out.Bounds()) {
		return
	}
	out.SetRGBA(x, y, col)
}

// drawLabel draws s with the fixed 7x13 face, baseline at (x, y).
func drawLabel(out *image.RGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func bubbleRadii(c geom.Corners, l template.Layout) (rx, ry float64) {
	frameW := math.Hypot(c.TR.X-c.TL.X, c.TR.Y-c.TL.Y)
	frameH := math.Hypot(c.BL.X-c.TL.X, c.BL.Y-c.TL.Y)
	return l.BubbleDX * frameW / 2, l.BubbleDY * frameH / 2
}
