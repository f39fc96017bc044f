/*
NAME
  answer.go

DESCRIPTION
  answer.go is the Answer Decoder: for every question in a template's
  answer blocks it samples the choice bubbles, selects the
  highest-fill choice that clears the fill threshold, rejects weak
  grayscale signals, and flags questions with two competitive choices
  as multi-answer.

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
	"gonum.org/v1/gonum/floats"

	"github.com/scanmark/omr/config"
	"github.com/scanmark/omr/coord"
	"github.com/scanmark/omr/sampler"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
)

// AnswerResult is the Answer Decoder's output: the answer list
// (indexed 0..num_items-1, empty string for no accepted choice) and
// the sorted 1-based questions flagged multi-answer.
type AnswerResult struct {
	Answers              []string
	MultiAnswerQuestions []int
}

// Answers decodes every question in l's answer blocks, sampling
// choices choice bubbles per question with the given sampler kernel.
func Answers(m coord.Mapper, kind sampler.Kind, bin *surface.Binary, gray *surface.Gray, l template.Layout, choices int, params config.SamplerParams) AnswerResult {
	qFills := AnswerFills(m, kind, bin, gray, l, choices)

	answers := make([]string, l.NumItems)
	var multi []int

	for i, fills := range qFills {
		if fills == nil {
			continue
		}
		answers[i] = selectChoice(fills, kind, params)
		if isMultiAnswer(fills, params) {
			multi = append(multi, i+1)
		}
	}

	return AnswerResult{Answers: answers, MultiAnswerQuestions: multi}
}

// selectChoice picks the highest-fill choice letter that clears the
// answer fill threshold, applying grayscale-only weak-signal rejection.
func selectChoice(fills []float64, kind sampler.Kind, params config.SamplerParams) string {
	maxFill, maxIdx := argmax(fills)
	if maxFill <= params.AnswerFillThreshold {
		return ""
	}

	if kind == sampler.Gray && params.WeakSignalRejectLevel > 0 {
		avgOthers := averageExcluding(fills, maxIdx)
		if maxFill < params.WeakSignalRejectLevel && maxFill < params.WeakSignalRejectRatio*avgOthers {
			return ""
		}
	}

	return string(rune('A' + maxIdx))
}

// isMultiAnswer sorts a copy of fills ascending (via gonum/floats),
// takes the highest and second-highest from its end, and reports
// whether the second-highest both exceeds the fill threshold and is
// at least the multi-answer ratio of the highest.
func isMultiAnswer(fills []float64, params config.SamplerParams) bool {
	if len(fills) < 2 {
		return false
	}
	sorted := append([]float64(nil), fills...)
	floats.Sort(sorted) // ascending
	n := len(sorted)
	max, second := sorted[n-1], sorted[n-2]
	if max == 0 {
		return false
	}
	return second > params.AnswerFillThreshold && second >= params.AnswerMultiRatio*max
}

func averageExcluding(fills []float64, excludeIdx int) float64 {
	var sum float64
	var n int
	for i, f := range fills {
		if i == excludeIdx {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
