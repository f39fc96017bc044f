/*
NAME
  config.go

DESCRIPTION
  config.go defines TuningProfile, the struct that carries every
  threshold and ratio the OMR pipeline stages consult, selected by
  image source rather than scattered through inline constants. One TuningProfile exists per image
  source: Upload, CameraLive and CameraFinal.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// Package config provides the TuningProfile struct and the per-source
// profile table the OMR pipeline orchestrator selects from, along
// with a Logger field and validation/defaulting in the style of
// revid/config.Config.
package config

import (
	"github.com/ausocean/utils/logging"
)

// Source identifies which of the three image-capture paths a decode
// request follows. Each has its own TuningProfile.
type Source int

const (
	// Upload is an already-rectified scan or flatbed image.
	Upload Source = iota
	// CameraLive is a low-resolution handheld preview frame, decoded
	// only for marker-overlay purposes.
	CameraLive
	// CameraFinal is a handheld photo taken for a real decode, routed
	// through the document scanner first.
	CameraFinal
)

// String implements fmt.Stringer for diagnostic logging.
func (s Source) String() string {
	switch s {
	case Upload:
		return "upload"
	case CameraLive:
		return "camera-live"
	case CameraFinal:
		return "camera-final"
	default:
		return "unknown"
	}
}

// MarkerParams holds the thresholds the Marker Locator stage uses,
// which vary by source.
type MarkerParams struct {
	// SearchFraction is the side of the per-corner search square, as a
	// fraction of the paper dimension.
	SearchFraction float64
	// MinDensity is the minimum accepted fill density of a candidate
	// marker patch.
	MinDensity float64
	// RejectDimRing, when true, rejects candidates whose surrounding
	// ring has mean luma below RingLumaMin (requires a grayscale
	// image; not applied on the upload path).
	RejectDimRing bool
	RingLumaMin   float64
}

// SamplerParams holds the fill thresholds the Identifier and Answer
// Decoders use for a given source and sampler kernel.
type SamplerParams struct {
	IDFillThreshold       float64
	IDDoubleShadeRatio    float64
	AnswerFillThreshold   float64
	AnswerMultiRatio      float64
	WeakSignalRejectLevel float64 // grayscale sampler only; 0 disables.
	WeakSignalRejectRatio float64
}

// TuningProfile collects every numeric knob a pipeline stage consults
// for one image source. See variables.go for the canonical defaults and Validate for
// fallback behaviour when a caller builds one by hand with zero
// values left unset.
type TuningProfile struct {
	Source Source

	// UseBinarySampler selects the binary fill-ratio kernel when true,
	// the grayscale local-contrast kernel when false.
	UseBinarySampler bool

	Marker  MarkerParams
	Sampler SamplerParams

	// UseDocumentScanner routes the image through the Document Scanner
	// stage before grayscale/threshold/marker processing.
	UseDocumentScanner bool

	// OtsuCap, when true, caps the adaptive threshold at the Otsu
	// value (upload path); camera paths do not cap.
	OtsuCap bool

	// Logger receives Warning calls from the orchestrator whenever a
	// stage degrades (marker search failing and synthesized corners
	// being substituted, the document scanner failing to localize
	// paper edges and passing the image through), and Info calls from
	// LogInvalidField when Validate defaults a field.
	Logger logging.Logger
}

// Validate checks for obviously invalid profile fields and defaults
// them, logging each default exactly like Config.LogInvalidField does
// in revid/config.
func (p *TuningProfile) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(p)
		}
	}
	return nil
}

// LogInvalidField logs that a TuningProfile field was bad or unset and
// has been defaulted, mirroring revid/config.Config.LogInvalidField.
func (p *TuningProfile) LogInvalidField(name string, def interface{}) {
	if p.Logger == nil {
		return
	}
	p.Logger.Info(name+" bad or unset, defaulting", name, def)
}

// Profile returns the canonical TuningProfile for the given source. The returned
// profile's Logger is nil; callers should set it before use if they
// want degrade-path logging.
func Profile(src Source) TuningProfile {
	switch src {
	case Upload:
		return TuningProfile{
			Source:           Upload,
			UseBinarySampler: true,
			OtsuCap:          true,
			Marker: MarkerParams{
				SearchFraction: 0.30,
				MinDensity:     0.45,
				RejectDimRing:  false,
			},
			Sampler: SamplerParams{
				IDFillThreshold:     0.25,
				IDDoubleShadeRatio:  0.55,
				AnswerFillThreshold: 0.20,
				AnswerMultiRatio:    0.45,
			},
		}
	case CameraLive:
		return TuningProfile{
			Source:             CameraLive,
			UseBinarySampler:   false,
			UseDocumentScanner: false,
			OtsuCap:            false,
			Marker: MarkerParams{
				SearchFraction: 0.35,
				MinDensity:     0.30,
				RejectDimRing:  true,
				RingLumaMin:    120,
			},
			Sampler: SamplerParams{
				IDFillThreshold:     0.10,
				IDDoubleShadeRatio:  0.65,
				AnswerFillThreshold: 0.08,
				AnswerMultiRatio:    0.45,
			},
		}
	case CameraFinal:
		return TuningProfile{
			Source:             CameraFinal,
			UseBinarySampler:   false,
			UseDocumentScanner: true,
			OtsuCap:            false,
			Marker: MarkerParams{
				// SearchFraction defaults to the upload value; the
				// 100-item template overrides it to 0.25 regardless
				// of source (see marker.SearchFraction).
				SearchFraction: 0.30,
				MinDensity:     0.40,
				RejectDimRing:  true,
				RingLumaMin:    120,
			},
			Sampler: SamplerParams{
				IDFillThreshold:       0.15,
				IDDoubleShadeRatio:    0.65,
				AnswerFillThreshold:   0.15,
				AnswerMultiRatio:      0.70,
				WeakSignalRejectLevel: 0.15,
				WeakSignalRejectRatio: 2.0,
			},
		}
	default:
		return TuningProfile{Source: src}
	}
}
