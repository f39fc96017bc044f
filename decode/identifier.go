/*
NAME
  identifier.go

DESCRIPTION
  identifier.go is the Identifier Decoder: for each identifier column
  it samples the ten digit bubbles, accepts the highest-fill digit
  when it clears the fill threshold, and flags a double shade when two
  or more bubbles in the column are simultaneously darkened.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package decode implements the Identifier Decoder and Answer Decoder
// pipeline stages, sampling a TemplateLayout's bubble positions and
// turning fill scores into a student ID and an answer list.
package decode

import (
	"github.com/scanmark/omr/config"
	"github.com/scanmark/omr/coord"
	"github.com/scanmark/omr/sampler"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
)

// IdentifierResult is the Identifier Decoder's output: the decoded
// digit string (0-filled for unread columns) and the sorted 1-based
// columns where two or more bubbles were simultaneously darkened.
type IdentifierResult struct {
	Digits              string
	DoubleShadeColumns  []int
}

// Identifier decodes the student-identifier grid of l using the given
// sampler kernel and buffers. Exactly one of bin or gray is consulted,
// chosen by kind.
func Identifier(m coord.Mapper, kind sampler.Kind, bin *surface.Binary, gray *surface.Gray, l template.Layout, params config.SamplerParams) IdentifierResult {
	colFills := IDFills(m, kind, bin, gray, l)

	digits := make([]byte, l.ID.Columns)
	var doubleShade []int

	for col, fills := range colFills {
		maxFill, maxRow := argmax(fills)
		digit := byte('0')
		if maxFill > params.IDFillThreshold {
			digit = byte('0' + maxRow)
		}
		digits[col] = digit

		if countAtOrAbove(fills, params.IDFillThreshold, maxFill*params.IDDoubleShadeRatio) >= 2 {
			doubleShade = append(doubleShade, col+1)
		}
	}

	return IdentifierResult{Digits: string(digits), DoubleShadeColumns: doubleShade}
}

// argmax returns the largest value in fills and its index.
func argmax(fills []float64) (max float64, idx int) {
	for i, f := range fills {
		if f > max {
			max = f
			idx = i
		}
	}
	return max, idx
}

// countAtOrAbove counts entries in fills that exceed both fillThresh
// and ratioThresh, the double-shade test.
func countAtOrAbove(fills []float64, fillThresh, ratioThresh float64) int {
	var n int
	for _, f := range fills {
		if f > fillThresh && f > ratioThresh {
			n++
		}
	}
	return n
}
