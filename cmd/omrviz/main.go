/*
NAME
  omrviz - plot bubble fill scores for template calibration.

DESCRIPTION
  omrviz decodes a sheet image with the upload pipeline and renders a
  heatmap of every answer bubble's raw fill score, plus an optional
  annotated overlay copy of the input. When a template's geometry
  drifts against the printed artwork, the heatmap shows the
  misregistration as a diagonal smear instead of a clean column.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// omrviz renders fill-score heatmaps for template calibration.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/utils/logging"

	"github.com/scanmark/omr/diagnostic"
	"github.com/scanmark/omr/surface"
)

const pkg = "omrviz: "

func main() {
	input := flag.String("input", "", "image file to survey (PNG or JPEG)")
	items := flag.Int("items", 50, "number of questions on the sheet (max 100)")
	choices := flag.Int("choices", 4, "answer choices per question (2-8)")
	out := flag.String("out", "fills.png", "answer fill-score heatmap output path")
	overlay := flag.String("overlay", "", "also write an annotated overlay PNG to this path")
	flag.Parse()

	log := logging.New(logging.Info, os.Stderr, true)

	if *input == "" {
		log.Fatal(pkg + "no -input file given")
	}

	im, err := loadImage(*input)
	if err != nil {
		log.Fatal(pkg+"could not load image", "error", err.Error())
	}

	survey, err := diagnostic.SurveyUpload(im, *items, *choices)
	if err != nil {
		log.Fatal(pkg+"survey failed", "error", err.Error())
	}
	if !survey.MarkersFound {
		log.Warning(pkg + "markers not found; fills sampled against synthesized corners")
	}

	if err := writeHeatmap(survey.AnswerFills, *choices, *out); err != nil {
		log.Fatal(pkg+"could not write heatmap", "error", err.Error())
	}
	log.Info(pkg+"wrote heatmap", "path", *out)

	if *overlay != "" {
		annotated := diagnostic.Annotate(im, survey.Corners, survey.Layout, survey.Choices, survey.IDFills, survey.AnswerFills)
		if err := writePNG(annotated, *overlay); err != nil {
			log.Fatal(pkg+"could not write overlay", "error", err.Error())
		}
		log.Info(pkg+"wrote overlay", "path", *overlay)
	}
}

// fillGrid adapts a [question][choice] fill matrix to plotter.GridXYZ.
type fillGrid struct {
	fills   [][]float64
	choices int
}

func (g fillGrid) Dims() (c, r int) { return g.choices, len(g.fills) }

func (g fillGrid) Z(c, r int) float64 {
	if g.fills[r] == nil || c >= len(g.fills[r]) {
		return 0
	}
	return g.fills[r][c]
}

func (g fillGrid) X(c int) float64 { return float64(c + 1) }
func (g fillGrid) Y(r int) float64 { return float64(r + 1) }

func writeHeatmap(fills [][]float64, choices int, path string) error {
	p := plot.New()
	p.Title.Text = "answer bubble fill scores"
	p.X.Label.Text = "choice"
	p.Y.Label.Text = "question"

	h := plotter.NewHeatMap(fillGrid{fills: fills, choices: choices}, palette.Heat(12, 1))
	h.Min, h.Max = 0, 1
	p.Add(h)

	return p.Save(4*vg.Inch, 10*vg.Inch, path)
}

func loadImage(path string) (*surface.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return surface.FromImage(img), nil
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
