/*
NAME
  omr.go

DESCRIPTION
  omr.go is the Pipeline Orchestrator: the single entry point that
  dispatches the upload, camera-live and camera-final paths, threading a TuningProfile and an
  ausocean/utils/logging.Logger through every stage and assembling the
  final DecodeResult. It never panics and always returns a well-formed
  result, degrading instead of erroring on any algorithmic failure.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package omr is the OMR core: a pure, deterministic, single-threaded
// function from (image, template kind, image source) to a decoded
// DecodeResult. This file is the orchestrator that wires every stage
// package together.
package omr

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"

	"github.com/scanmark/omr/config"
	"github.com/scanmark/omr/coord"
	"github.com/scanmark/omr/decode"
	"github.com/scanmark/omr/geom"
	"github.com/scanmark/omr/grayscale"
	"github.com/scanmark/omr/marker"
	"github.com/scanmark/omr/sampler"
	"github.com/scanmark/omr/scanner"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
	"github.com/scanmark/omr/threshold"
)

// Source identifies which of the three image-capture paths a decode
// request follows; re-exported from config so callers never need to
// import the config package just to name a source.
type Source = config.Source

const (
	Upload      = config.Upload
	CameraLive  = config.CameraLive
	CameraFinal = config.CameraFinal
)

const (
	minChoices = 2
	maxChoices = 8

	uploadSynthInset     = 0.02
	items100SynthInset   = 0.04
)

// DecodeResult is the OMR core's output.
type DecodeResult struct {
	StudentID            string   `json:"student_id"`
	IDDoubleShadeColumns []int    `json:"id_double_shade_columns"`
	Answers              []string `json:"answers"`
	MultiAnswerQuestions []int    `json:"multi_answer_questions"`
	MarkersFound         bool     `json:"markers_found"`
}

// emptyResult builds a well-formed, fully degraded DecodeResult for a
// template of the given kind: all-zero ID, all-empty answers, no
// flags, markers not found. Used by the CameraLive path, which attempts
// no decode and only sets MarkersFound afterwards.
func emptyResult(l template.Layout) DecodeResult {
	return DecodeResult{
		StudentID:            zeroDigits(l.ID.Columns),
		IDDoubleShadeColumns: nil,
		Answers:              make([]string, l.NumItems),
		MultiAnswerQuestions: nil,
		MarkersFound:         false,
	}
}

func zeroDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

// Decode runs the full OMR pipeline over im for a sheet with numItems
// questions and choices answer choices per question, following the
// path selected by source. It is the package's single entry point.
func Decode(im *surface.Image, numItems, choices int, source Source, logger logging.Logger) (DecodeResult, error) {
	if err := im.Validate(); err != nil {
		return DecodeResult{}, errors.Wrap(ErrInputTooSmall, err.Error())
	}
	kind, err := template.KindFor(numItems)
	if err != nil {
		return DecodeResult{}, errors.Wrap(ErrUnsupportedTemplate, err.Error())
	}
	if choices < minChoices || choices > maxChoices {
		return DecodeResult{}, fmt.Errorf("%w: got %d, need %d..%d", ErrUnsupportedChoices, choices, minChoices, maxChoices)
	}
	layout := template.Lookup(kind)

	profile := config.Profile(source)
	profile.Logger = logger
	if err := profile.Validate(); err != nil {
		logWarn(logger, "tuning profile validation failed", "err", err)
	}

	var res DecodeResult
	switch source {
	case config.Upload:
		res = decodeUpload(im, layout, kind, choices, profile)
	case config.CameraLive:
		res = decodeCameraLive(im, layout, kind, profile)
	case config.CameraFinal:
		res = decodeCameraFinal(im, layout, kind, choices, profile)
	default:
		logWarn(logger, "unknown image source, defaulting to upload path", "source", int(source))
		res = decodeUpload(im, layout, kind, choices, profile)
	}
	return truncate(res, numItems), nil
}

// truncate trims a result decoded over a full template down to the
// requested item count. Templates always carry their full capacity of
// bubble rows, but a 15-question exam printed on the 20-item sheet
// reports 15 answers.
func truncate(res DecodeResult, numItems int) DecodeResult {
	if len(res.Answers) <= numItems {
		return res
	}
	res.Answers = res.Answers[:numItems]
	keep := res.MultiAnswerQuestions[:0]
	for _, q := range res.MultiAnswerQuestions {
		if q <= numItems {
			keep = append(keep, q)
		}
	}
	if len(keep) == 0 {
		keep = nil
	}
	res.MultiAnswerQuestions = keep
	return res
}

func decodeUpload(im *surface.Image, l template.Layout, kind template.Kind, choices int, profile config.TuningProfile) DecodeResult {
	gray := grayscale.ToGray(im)
	norm := grayscale.Normalize(gray)
	otsu := threshold.Otsu(norm)
	bin := threshold.AdaptiveUpload(norm, otsu)

	markerParams := profile.Marker
	markerParams.SearchFraction = marker.SearchFraction(markerParams, kind)
	mres := marker.Locate(bin, nil, marker.FullImage(im.W, im.H), markerParams)

	corners := resolveCorners(mres, im.W, im.H, kind)
	logDegradeIfNeeded(profile.Logger, mres.Found, "upload")

	m := coord.NewMapper(corners)
	idRes := decode.Identifier(m, sampler.Binary, bin, nil, l, profile.Sampler)
	ansRes := decode.Answers(m, sampler.Binary, bin, nil, l, choices, profile.Sampler)

	return assemble(idRes, ansRes, mres.Found)
}

func decodeCameraLive(im *surface.Image, l template.Layout, kind template.Kind, profile config.TuningProfile) DecodeResult {
	gray := grayscale.ToGray(im)
	meanBrightness := grayscale.MeanLuma(gray)
	bin := threshold.AdaptiveCamera(gray, meanBrightness)

	markerParams := profile.Marker
	markerParams.SearchFraction = marker.SearchFraction(markerParams, kind)
	mres := marker.Locate(bin, gray, marker.FullImage(im.W, im.H), markerParams)
	logDegradeIfNeeded(profile.Logger, mres.Found, "camera-live")

	res := emptyResult(l)
	res.MarkersFound = mres.Found
	return res
}

func decodeCameraFinal(im *surface.Image, l template.Layout, kind template.Kind, choices int, profile config.TuningProfile) DecodeResult {
	rawGray := grayscale.ToGray(im)
	scanRes := scanner.Scan(im, rawGray)
	if !scanRes.Scanned {
		logWarn(profile.Logger, "document scanner could not localize paper edges, passing image through", "source", "camera-final")
	}

	gray := grayscale.ToGray(scanRes.Image)
	norm := grayscale.Normalize(gray)
	meanBrightness := grayscale.MeanLuma(norm)
	bin := threshold.AdaptiveCamera(norm, meanBrightness)

	markerParams := profile.Marker
	markerParams.SearchFraction = marker.SearchFraction(markerParams, kind)
	mres := marker.Locate(bin, norm, marker.FullImage(scanRes.Image.W, scanRes.Image.H), markerParams)
	logDegradeIfNeeded(profile.Logger, mres.Found, "camera-final")

	corners := resolveCorners(mres, scanRes.Image.W, scanRes.Image.H, kind)
	m := coord.NewMapper(corners)
	idRes := decode.Identifier(m, sampler.Gray, nil, norm, l, profile.Sampler)
	ansRes := decode.Answers(m, sampler.Gray, nil, norm, l, choices, profile.Sampler)

	return assemble(idRes, ansRes, mres.Found)
}

// resolveCorners returns the located marker corners when found, or
// synthesized image-bound corners otherwise. The 100-item template
// uses a 4% inset fallback; every other template uses 2%.
func resolveCorners(mres marker.Result, w, h int, kind template.Kind) geom.Corners {
	if mres.Found {
		return geom.Corners{TL: mres.TL, TR: mres.TR, BL: mres.BL, BR: mres.BR}
	}
	inset := uploadSynthInset
	if kind == template.Items100 {
		inset = items100SynthInset
	}
	return geom.FromBounds(w, h, inset)
}

func assemble(idRes decode.IdentifierResult, ansRes decode.AnswerResult, markersFound bool) DecodeResult {
	return DecodeResult{
		StudentID:            idRes.Digits,
		IDDoubleShadeColumns: idRes.DoubleShadeColumns,
		Answers:              ansRes.Answers,
		MultiAnswerQuestions: ansRes.MultiAnswerQuestions,
		MarkersFound:         markersFound,
	}
}

func logDegradeIfNeeded(l logging.Logger, found bool, path string) {
	if found || l == nil {
		return
	}
	l.Warning("markers not found, substituting synthesized corners", "path", path)
}

func logWarn(l logging.Logger, msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.Warning(msg, kv...)
}
