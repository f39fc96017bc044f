/*
NAME
  omrdecode - decode a single bubble-sheet image file.

DESCRIPTION
  omrdecode reads one PNG or JPEG image, runs the OMR pipeline over it
  and prints the decode result as JSON. With -debug it also writes an
  annotated copy of the image showing frame corners, bubble sampling
  regions and fill scores.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// omrdecode is a single-shot CLI over omr.Decode.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/scanmark/omr"
	"github.com/scanmark/omr/diagnostic"
	"github.com/scanmark/omr/surface"
)

const pkg = "omrdecode: "

func main() {
	input := flag.String("input", "", "image file to decode (PNG or JPEG)")
	items := flag.Int("items", 50, "number of questions on the sheet (max 100)")
	choices := flag.Int("choices", 4, "answer choices per question (2-8)")
	source := flag.String("source", "upload", "image source: upload, camera or live")
	debug := flag.String("debug", "", "write an annotated overlay PNG to this path (upload path only)")
	verbose := flag.Bool("verbose", false, "log pipeline degradation at debug level")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, pkg+"no -input file given")
		flag.Usage()
		os.Exit(1)
	}

	level := logging.Warning
	if *verbose {
		level = logging.Debug
	}
	log := logging.New(level, os.Stderr, true)

	src, err := parseSource(*source)
	if err != nil {
		log.Fatal(pkg+"bad -source", "error", err.Error())
	}

	im, err := loadImage(*input)
	if err != nil {
		log.Fatal(pkg+"could not load image", "error", err.Error())
	}

	res, err := omr.Decode(im, *items, *choices, src, log)
	if err != nil {
		log.Fatal(pkg+"decode failed", "error", err.Error())
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatal(pkg+"could not marshal result", "error", err.Error())
	}
	fmt.Println(string(out))

	if *debug != "" {
		if err := writeOverlay(im, *items, *choices, *debug); err != nil {
			log.Fatal(pkg+"could not write overlay", "error", err.Error())
		}
		log.Info(pkg+"wrote overlay", "path", *debug)
	}
}

func parseSource(s string) (omr.Source, error) {
	switch s {
	case "upload":
		return omr.Upload, nil
	case "camera":
		return omr.CameraFinal, nil
	case "live":
		return omr.CameraLive, nil
	default:
		return omr.Upload, fmt.Errorf("unknown source %q", s)
	}
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

func writeOverlay(im *surface.Image, items, choices int, path string) error {
	survey, err := diagnostic.SurveyUpload(im, items, choices)
	if err != nil {
		return err
	}
	annotated := diagnostic.Annotate(im, survey.Corners, survey.Layout, survey.Choices, survey.IDFills, survey.AnswerFills)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, annotated)
}
