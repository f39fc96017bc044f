/*
NAME
  omr_test.go

DESCRIPTION
  omr_test.go exercises the full decode pipeline end to end over
  synthetic sheets painted by internal/render: round trips across all
  three templates, the degraded-input edge cases, and agreement
  between the upload and camera-final paths on already-rectified
  pixels.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package omr

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scanmark/omr/internal/render"
	"github.com/scanmark/omr/surface"
	"github.com/scanmark/omr/template"
)

// newSheet paints a synthetic sheet for the given item count.
func newSheet(t *testing.T, numItems, choices int) *render.Sheet {
	t.Helper()
	kind, err := template.KindFor(numItems)
	if err != nil {
		t.Fatalf("KindFor(%d) error = %v", numItems, err)
	}
	l := template.Lookup(kind)
	w, h := render.DefaultSize(kind)
	return render.NewSheet(l, choices, w, h)
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, numItems := range []int{20, 50, 100} {
		for _, choices := range []int{3, 4, 5} {
			t.Run(fmt.Sprintf("%ditems-%dchoices", numItems, choices), func(t *testing.T) {
				sheet := newSheet(t, numItems, choices)

				id := "123456789"
				if sheet.Layout.ID.Columns == 10 {
					id = "1234567890"
				}
				sheet.MarkID(id)

				want := make([]string, numItems)
				for q := 1; q <= numItems; q++ {
					c := (q - 1) % choices
					sheet.MarkAnswer(q, c)
					want[q-1] = string(rune('A' + c))
				}

				res, err := Decode(sheet.Im, numItems, choices, Upload, nil)
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if !res.MarkersFound {
					t.Fatal("MarkersFound = false, want true")
				}
				if res.StudentID != id {
					t.Errorf("StudentID = %q, want %q", res.StudentID, id)
				}
				if diff := cmp.Diff(want, res.Answers); diff != "" {
					t.Errorf("Answers mismatch (-want +got):\n%s", diff)
				}
				if len(res.MultiAnswerQuestions) != 0 {
					t.Errorf("MultiAnswerQuestions = %v, want none", res.MultiAnswerQuestions)
				}
				if len(res.IDDoubleShadeColumns) != 0 {
					t.Errorf("IDDoubleShadeColumns = %v, want none", res.IDDoubleShadeColumns)
				}
			})
		}
	}
}

func TestDecodeBlank50(t *testing.T) {
	sheet := newSheet(t, 50, 4)

	res, err := Decode(sheet.Im, 50, 4, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := DecodeResult{
		StudentID:    "000000000",
		Answers:      make([]string, 50),
		MarkersFound: true,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Decode(blank) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode20AllA(t *testing.T) {
	sheet := newSheet(t, 20, 4)
	sheet.MarkID("202600001")
	for q := 1; q <= 20; q++ {
		sheet.MarkAnswer(q, 0)
	}

	res, err := Decode(sheet.Im, 20, 4, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if res.StudentID != "202600001" {
		t.Errorf("StudentID = %q, want %q", res.StudentID, "202600001")
	}
	for q, a := range res.Answers {
		if a != "A" {
			t.Errorf("Answers[%d] = %q, want A", q, a)
		}
	}
	if len(res.MultiAnswerQuestions) != 0 || len(res.IDDoubleShadeColumns) != 0 {
		t.Errorf("unexpected flags: multi=%v double=%v", res.MultiAnswerQuestions, res.IDDoubleShadeColumns)
	}
}

func TestDecodeMultiAnswerFlagged(t *testing.T) {
	sheet := newSheet(t, 100, 4)
	sheet.MarkAnswer(57, 1) // B
	sheet.MarkAnswer(57, 3) // D

	res, err := Decode(sheet.Im, 100, 4, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := res.Answers[56]; got != "B" && got != "D" {
		t.Errorf("Answers[56] = %q, want B or D", got)
	}
	if !containsInt(res.MultiAnswerQuestions, 57) {
		t.Errorf("MultiAnswerQuestions = %v, want to contain 57", res.MultiAnswerQuestions)
	}
}

func TestDecodeIDDoubleShade(t *testing.T) {
	sheet := newSheet(t, 50, 4)
	sheet.MarkIDDigit(2, 2)
	sheet.MarkIDDigit(2, 5)

	res, err := Decode(sheet.Im, 50, 4, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !containsInt(res.IDDoubleShadeColumns, 3) {
		t.Errorf("IDDoubleShadeColumns = %v, want to contain 3", res.IDDoubleShadeColumns)
	}
	if d := res.StudentID[2]; d != '2' && d != '5' {
		t.Errorf("StudentID[2] = %q, want 2 or 5", d)
	}
}

func TestDecodeTruncatesToRequestedItems(t *testing.T) {
	sheet := newSheet(t, 20, 4)
	for q := 1; q <= 20; q++ {
		sheet.MarkAnswer(q, 1)
	}

	res, err := Decode(sheet.Im, 15, 4, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(res.Answers) != 15 {
		t.Fatalf("len(Answers) = %d, want 15", len(res.Answers))
	}
	for _, q := range res.MultiAnswerQuestions {
		if q > 15 {
			t.Errorf("MultiAnswerQuestions contains %d, beyond requested 15", q)
		}
	}
}

func TestDecodeIdempotent(t *testing.T) {
	sheet := newSheet(t, 50, 5)
	sheet.MarkID("987654321")
	for q := 1; q <= 50; q++ {
		sheet.MarkAnswer(q, q%5)
	}

	first, err := Decode(sheet.Im, 50, 5, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	second, err := Decode(sheet.Im, 50, 5, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeat decode differs (-first +second):\n%s", diff)
	}
}

func TestDecodeCameraFinalMatchesUpload(t *testing.T) {
	// An already-rectified sheet must decode identically through the
	// document-scanner path and the upload path.
	sheet := newSheet(t, 20, 4)
	sheet.MarkID("310570026")
	for q := 1; q <= 20; q++ {
		sheet.MarkAnswer(q, (q+1)%4)
	}

	up, err := Decode(sheet.Im, 20, 4, Upload, nil)
	if err != nil {
		t.Fatalf("Decode(upload) error = %v", err)
	}
	cam, err := Decode(sheet.Im, 20, 4, CameraFinal, nil)
	if err != nil {
		t.Fatalf("Decode(camera-final) error = %v", err)
	}

	if !up.MarkersFound || !cam.MarkersFound {
		t.Fatalf("MarkersFound: upload=%v camera=%v, want both true", up.MarkersFound, cam.MarkersFound)
	}
	if up.StudentID != cam.StudentID {
		t.Errorf("StudentID: upload=%q camera=%q", up.StudentID, cam.StudentID)
	}
	if diff := cmp.Diff(up.Answers, cam.Answers); diff != "" {
		t.Errorf("Answers differ between paths (-upload +camera):\n%s", diff)
	}
}

func TestDecodeCameraLiveReportsMarkersOnly(t *testing.T) {
	sheet := newSheet(t, 20, 4)
	sheet.MarkID("202600001")
	for q := 1; q <= 20; q++ {
		sheet.MarkAnswer(q, 0)
	}

	res, err := Decode(sheet.Im, 20, 4, CameraLive, nil)
	if err != nil {
		t.Fatalf("Decode(camera-live) error = %v", err)
	}
	if !res.MarkersFound {
		t.Error("MarkersFound = false, want true")
	}
	if res.StudentID != strings.Repeat("0", 9) {
		t.Errorf("StudentID = %q, want all zeroes (live path decodes nothing)", res.StudentID)
	}
	for q, a := range res.Answers {
		if a != "" {
			t.Errorf("Answers[%d] = %q, want empty on the live path", q, a)
		}
	}
}

func TestDecodeDegradesWithoutMarkers(t *testing.T) {
	// Plain white image: decoding still yields a well-formed result
	// with synthesized corners and no marker confidence.
	im := surface.NewImage(400, 500)
	for i := range im.Pix {
		im.Pix[i] = 255
	}

	res, err := Decode(im, 50, 4, Upload, nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if res.MarkersFound {
		t.Error("MarkersFound = true on blank image, want false")
	}
	if len(res.Answers) != 50 {
		t.Errorf("len(Answers) = %d, want 50", len(res.Answers))
	}
	if res.StudentID != "000000000" {
		t.Errorf("StudentID = %q, want all zeroes", res.StudentID)
	}
}

func TestDecodeInputTooSmall(t *testing.T) {
	im := surface.NewImage(100, 100)
	if _, err := Decode(im, 20, 4, Upload, nil); !errors.Is(err, ErrInputTooSmall) {
		t.Fatalf("Decode(100x100) error = %v, want ErrInputTooSmall", err)
	}
}

func TestDecodeUnsupportedInputs(t *testing.T) {
	im := surface.NewImage(400, 500)
	if _, err := Decode(im, 150, 4, Upload, nil); !errors.Is(err, ErrUnsupportedTemplate) {
		t.Errorf("Decode(150 items) error = %v, want ErrUnsupportedTemplate", err)
	}
	if _, err := Decode(im, 20, 1, Upload, nil); !errors.Is(err, ErrUnsupportedChoices) {
		t.Errorf("Decode(1 choice) error = %v, want ErrUnsupportedChoices", err)
	}
	if _, err := Decode(im, 20, 9, Upload, nil); !errors.Is(err, ErrUnsupportedChoices) {
		t.Errorf("Decode(9 choices) error = %v, want ErrUnsupportedChoices", err)
	}
}

func containsInt(xs []int, want int) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
