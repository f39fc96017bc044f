/*
NAME
  survey.go

DESCRIPTION
  survey.go re-runs the upload decode stages over an image and keeps
  the intermediate artifacts a decode throws away: the resolved frame
  corners and the raw fill score of every bubble. The overlay and the
  calibration heatmap are drawn from a Survey.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package diagnostic

import (
	"github.com/scanmark/omr/config"
	"github.com/scanmark/omr/coord"
	"github.com/scanmark/omr/decode"
	"github.com/scanmark/omr/geom"
	"github.com/scanmark/omr/grayscale"
	"github.com/scanmark/omr/marker"
	"github.com/scanmark/omr/sampler"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
	"github.com/scanmark/omr/threshold"
)

// Corner-synthesis insets used when markers cannot be located,
// matching the decode fallback.
const (
	synthInset    = 0.02
	synthInset100 = 0.04
)

// Survey holds the intermediate decode artifacts for one image.
type Survey struct {
	Layout       template.Layout
	Choices      int
	Corners      geom.Corners
	MarkersFound bool
	IDFills      [][]float64
	AnswerFills  [][]float64
}

// SurveyUpload runs the upload-path stages over im and returns every
// bubble's fill score along with the corners they were sampled
// against.
func SurveyUpload(im *surface.Image, numItems, choices int) (Survey, error) {
	if err := im.Validate(); err != nil {
		return Survey{}, err
	}
	kind, err := template.KindFor(numItems)
	if err != nil {
		return Survey{}, err
	}
	l := template.Lookup(kind)

	gray := grayscale.ToGray(im)
	norm := grayscale.Normalize(gray)
	otsu := threshold.Otsu(norm)
	bin := threshold.AdaptiveUpload(norm, otsu)

	params := config.Profile(config.Upload).Marker
	params.SearchFraction = marker.SearchFraction(params, kind)
	mres := marker.Locate(bin, nil, marker.FullImage(im.W, im.H), params)

	var corners geom.Corners
	if mres.Found {
		corners = geom.Corners{TL: mres.TL, TR: mres.TR, BL: mres.BL, BR: mres.BR}
	} else {
		inset := synthInset
		if kind == template.Items100 {
			inset = synthInset100
		}
		corners = geom.FromBounds(im.W, im.H, inset)
	}

	m := coord.NewMapper(corners)
	return Survey{
		Layout:       l,
		Choices:      choices,
		Corners:      corners,
		MarkersFound: mres.Found,
		IDFills:      decode.IDFills(m, sampler.Binary, bin, nil, l),
		AnswerFills:  decode.AnswerFills(m, sampler.Binary, bin, nil, l, choices),
	}, nil
}
