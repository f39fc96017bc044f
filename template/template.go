/*
NAME
  template.go

DESCRIPTION
  template.go is the Template Registry: three fixed bubble-sheet
  layouts (20/50/100 items) expressed as normalized fractions of the
  marker-enclosed frame, reproduced verbatim from the printed-template
  measurements. It is a pure, immutable data table,
  built once at package init rather than per invocation.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package template is the Template Registry: the three hard-coded
// bubble-sheet layouts (20/50/100 items), expressed as normalized
// coordinates, that the Answer Decoder and Identifier Decoder sample
// against.
package template

import (
	"fmt"
	"sort"
)

// Kind identifies one of the three fixed template layouts.
type Kind int

const (
	Items20 Kind = iota
	Items50
	Items100
)

func (k Kind) String() string {
	switch k {
	case Items20:
		return "20-item"
	case Items50:
		return "50-item"
	case Items100:
		return "100-item"
	default:
		return "unknown"
	}
}

// KindFor selects the template kind for a requested item count:
// num_items <= 20 selects the mini-sheet, <= 50 the
// half-page sheet, and otherwise the 100-item full page. Item counts
// of zero or less, and above the 100-item cap, return an error, which
// the orchestrator reports as UnsupportedTemplate.
func KindFor(numItems int) (Kind, error) {
	switch {
	case numItems <= 0:
		return 0, fmt.Errorf("template: num_items must be positive, got %d", numItems)
	case numItems <= 20:
		return Items20, nil
	case numItems <= 50:
		return Items50, nil
	case numItems <= 100:
		return Items100, nil
	default:
		return 0, fmt.Errorf("template: num_items %d exceeds the 100-item cap", numItems)
	}
}

// IDGrid describes the student-identifier bubble grid: Columns columns
// of Rows digit bubbles (0-9), starting at (FirstNX, FirstNY) with the
// given column and row spacing, all in normalized frame coordinates.
type IDGrid struct {
	FirstNX, FirstNY   float64
	ColSpacing, RowSpacing float64
	Columns, Rows      int
}

// AnswerBlock describes one rectangular group of consecutive
// questions. Row r within the block corresponds to question
// StartQ + r; choice column c of that row samples at
// (FirstNX + c*NXSpacing, FirstNY + r*NYSpacing).
type AnswerBlock struct {
	StartQ, EndQ           int
	FirstNX, FirstNY       float64
	NXSpacing, NYSpacing   float64
}

// Layout is one complete template: an ID grid, an ordered list of
// answer blocks covering 1..NumItems exactly once, and the bubble
// diameter in normalized units.
type Layout struct {
	Kind     Kind
	NumItems int
	ID       IDGrid
	Blocks   []AnswerBlock
	BubbleDX, BubbleDY float64
}

// Validate checks the block-coverage invariant: blocks
// cover [1..NumItems] exactly once.
func (l Layout) Validate() error {
	seen := make([]bool, l.NumItems+1)
	for _, b := range l.Blocks {
		if b.StartQ < 1 || b.EndQ > l.NumItems || b.StartQ > b.EndQ {
			return fmt.Errorf("template: block [%d,%d] out of range for %d items", b.StartQ, b.EndQ, l.NumItems)
		}
		for q := b.StartQ; q <= b.EndQ; q++ {
			if seen[q] {
				return fmt.Errorf("template: question %d covered by more than one block", q)
			}
			seen[q] = true
		}
	}
	for q := 1; q <= l.NumItems; q++ {
		if !seen[q] {
			return fmt.Errorf("template: question %d not covered by any block", q)
		}
	}
	return nil
}

// BlockFor returns the answer block containing question q (1-based)
// and its row within that block, or ok=false if q is out of range.
func (l Layout) BlockFor(q int) (block AnswerBlock, row int, ok bool) {
	for _, b := range l.Blocks {
		if q >= b.StartQ && q <= b.EndQ {
			return b, q - b.StartQ, true
		}
	}
	return AnswerBlock{}, 0, false
}

// SortedQuestions returns every question covered by l's blocks in
// ascending order, regardless of the order the blocks are listed in.
func (l Layout) SortedQuestions() []int {
	qs := make([]int, 0, l.NumItems)
	for _, b := range l.Blocks {
		for q := b.StartQ; q <= b.EndQ; q++ {
			qs = append(qs, q)
		}
	}
	sort.Ints(qs)
	return qs
}

// Frame dimensions in millimetres, from the printed artwork. These exist only
// to document how the normalized constants below were derived from
// the printed-template measurements; nothing at runtime consults them.
const (
	frame20W, frame20H   = 91.0, 107.0
	frame50W, frame50H   = 91.0, 211.0
	frame100W, frame100H = 197.0, 215.5

	bubbleDiaSmall = 3.2 // mm, 20- and 50-item templates
	bubbleDiaLarge = 3.8 // mm, 100-item template

	// calibration100XMM compensates an off-by-one shift in the PDF
	// generator between an answer block's nominal origin and its
	// first printed bubble column, for the 100-item template only.
	// It is not applied to the ID grid, whose origin
	// is already given post-calibration.
	calibration100XMM = 5.0
)

// registry holds the three fixed layouts, built once at init.
var registry = map[Kind]Layout{
	Items20: {
		Kind:     Items20,
		NumItems: 20,
		ID: IDGrid{
			FirstNX: 10.0 / frame20W, FirstNY: 12.0 / frame20H,
			ColSpacing: 8.0 / frame20W, RowSpacing: 6.0 / frame20H,
			Columns: 9, Rows: 10,
		},
		Blocks: []AnswerBlock{
			{StartQ: 1, EndQ: 10,
				FirstNX: 10.0 / frame20W, FirstNY: 76.0 / frame20H,
				NXSpacing: 8.0 / frame20W, NYSpacing: 2.9 / frame20H},
			{StartQ: 11, EndQ: 20,
				FirstNX: 50.0 / frame20W, FirstNY: 76.0 / frame20H,
				NXSpacing: 8.0 / frame20W, NYSpacing: 2.9 / frame20H},
		},
		BubbleDX: bubbleDiaSmall / frame20W,
		BubbleDY: bubbleDiaSmall / frame20H,
	},
	Items50: {
		Kind:     Items50,
		NumItems: 50,
		ID: IDGrid{
			FirstNX: 10.0 / frame50W, FirstNY: 12.0 / frame50H,
			ColSpacing: 8.0 / frame50W, RowSpacing: 6.0 / frame50H,
			Columns: 9, Rows: 10,
		},
		Blocks: []AnswerBlock{
			{StartQ: 1, EndQ: 10,
				FirstNX: 10.0 / frame50W, FirstNY: 85.0 / frame50H,
				NXSpacing: 8.0 / frame50W, NYSpacing: 3.5 / frame50H},
			{StartQ: 11, EndQ: 20,
				FirstNX: 10.0 / frame50W, FirstNY: 125.0 / frame50H,
				NXSpacing: 8.0 / frame50W, NYSpacing: 3.5 / frame50H},
			{StartQ: 21, EndQ: 30,
				FirstNX: 10.0 / frame50W, FirstNY: 165.0 / frame50H,
				NXSpacing: 8.0 / frame50W, NYSpacing: 3.5 / frame50H},
			{StartQ: 31, EndQ: 40,
				FirstNX: 55.0 / frame50W, FirstNY: 85.0 / frame50H,
				NXSpacing: 8.0 / frame50W, NYSpacing: 3.5 / frame50H},
			{StartQ: 41, EndQ: 50,
				FirstNX: 55.0 / frame50W, FirstNY: 125.0 / frame50H,
				NXSpacing: 8.0 / frame50W, NYSpacing: 3.5 / frame50H},
		},
		BubbleDX: bubbleDiaSmall / frame50W,
		BubbleDY: bubbleDiaSmall / frame50H,
	},
	Items100: {
		Kind:     Items100,
		NumItems: 100,
		ID: IDGrid{
			// Measured from the printed artwork, already post-calibration.
			FirstNX: 14.5 / frame100W, FirstNY: 46.5 / frame100H,
			ColSpacing: 8.0 / frame100W, RowSpacing: 6.0 / frame100H,
			Columns: 10, Rows: 10,
		},
		Blocks: []AnswerBlock{
			// Two question-beside-ID blocks at the top.
			{StartQ: 41, EndQ: 50,
				FirstNX: (100.0 + calibration100XMM) / frame100W, FirstNY: 46.5 / frame100H,
				NXSpacing: 5.5 / frame100W, NYSpacing: 6.0 / frame100H},
			{StartQ: 71, EndQ: 80,
				FirstNX: (150.0 + calibration100XMM) / frame100W, FirstNY: 46.5 / frame100H,
				NXSpacing: 5.5 / frame100W, NYSpacing: 6.0 / frame100H},
			// 4-wide x 2-tall bottom grid, eight blocks of ten.
			{StartQ: 1, EndQ: 10,
				FirstNX: (5.0 + calibration100XMM) / frame100W, FirstNY: 115.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
			{StartQ: 11, EndQ: 20,
				FirstNX: (54.25 + calibration100XMM) / frame100W, FirstNY: 115.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
			{StartQ: 21, EndQ: 30,
				FirstNX: (103.5 + calibration100XMM) / frame100W, FirstNY: 115.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
			{StartQ: 31, EndQ: 40,
				FirstNX: (152.75 + calibration100XMM) / frame100W, FirstNY: 115.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
			{StartQ: 51, EndQ: 60,
				FirstNX: (5.0 + calibration100XMM) / frame100W, FirstNY: 165.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
			{StartQ: 61, EndQ: 70,
				FirstNX: (54.25 + calibration100XMM) / frame100W, FirstNY: 165.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
			{StartQ: 81, EndQ: 90,
				FirstNX: (103.5 + calibration100XMM) / frame100W, FirstNY: 165.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
			{StartQ: 91, EndQ: 100,
				FirstNX: (152.75 + calibration100XMM) / frame100W, FirstNY: 165.0 / frame100H,
				NXSpacing: 6.0 / frame100W, NYSpacing: 4.5 / frame100H},
		},
		BubbleDX: bubbleDiaLarge / frame100W,
		BubbleDY: bubbleDiaLarge / frame100H,
	},
}

// Lookup returns the immutable Layout for k. Callers must not mutate
// the returned value's slices.
func Lookup(k Kind) Layout {
	return registry[k]
}
