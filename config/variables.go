/*
NAME
  variables.go

DESCRIPTION
  variables.go lists the TuningProfile fields that can be invalid after
  manual construction, together with a validation function that
  defaults each one, in the same table-driven shape as
  revid/config.Variables.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package config

// Config field names, used as Variable keys and in LogInvalidField
// calls.
const (
	KeySearchFraction        = "Marker.SearchFraction"
	KeyMinDensity            = "Marker.MinDensity"
	KeyIDFillThreshold       = "Sampler.IDFillThreshold"
	KeyIDDoubleShadeRatio    = "Sampler.IDDoubleShadeRatio"
	KeyAnswerFillThreshold   = "Sampler.AnswerFillThreshold"
	KeyAnswerMultiRatio      = "Sampler.AnswerMultiRatio"
)

// Variables describes the TuningProfile fields that Validate defaults
// when left at their zero value, mirroring revid/config.Variables.
var Variables = []struct {
	Name     string
	Validate func(*TuningProfile)
}{
	{
		Name: KeySearchFraction,
		Validate: func(p *TuningProfile) {
			if p.Marker.SearchFraction <= 0 || p.Marker.SearchFraction > 1 {
				def := defaultSearchFraction(p.Source)
				p.LogInvalidField(KeySearchFraction, def)
				p.Marker.SearchFraction = def
			}
		},
	},
	{
		Name: KeyMinDensity,
		Validate: func(p *TuningProfile) {
			if p.Marker.MinDensity <= 0 || p.Marker.MinDensity > 1 {
				def := defaultMinDensity(p.Source)
				p.LogInvalidField(KeyMinDensity, def)
				p.Marker.MinDensity = def
			}
		},
	},
	{
		Name: KeyIDFillThreshold,
		Validate: func(p *TuningProfile) {
			if p.Sampler.IDFillThreshold <= 0 {
				def := Profile(p.Source).Sampler.IDFillThreshold
				p.LogInvalidField(KeyIDFillThreshold, def)
				p.Sampler.IDFillThreshold = def
			}
		},
	},
	{
		Name: KeyIDDoubleShadeRatio,
		Validate: func(p *TuningProfile) {
			if p.Sampler.IDDoubleShadeRatio <= 0 {
				def := Profile(p.Source).Sampler.IDDoubleShadeRatio
				p.LogInvalidField(KeyIDDoubleShadeRatio, def)
				p.Sampler.IDDoubleShadeRatio = def
			}
		},
	},
	{
		Name: KeyAnswerFillThreshold,
		Validate: func(p *TuningProfile) {
			if p.Sampler.AnswerFillThreshold <= 0 {
				def := Profile(p.Source).Sampler.AnswerFillThreshold
				p.LogInvalidField(KeyAnswerFillThreshold, def)
				p.Sampler.AnswerFillThreshold = def
			}
		},
	},
	{
		Name: KeyAnswerMultiRatio,
		Validate: func(p *TuningProfile) {
			if p.Sampler.AnswerMultiRatio <= 0 {
				def := Profile(p.Source).Sampler.AnswerMultiRatio
				p.LogInvalidField(KeyAnswerMultiRatio, def)
				p.Sampler.AnswerMultiRatio = def
			}
		},
	},
}

func defaultSearchFraction(s Source) float64 {
	switch s {
	case Upload:
		return 0.30
	case CameraLive:
		return 0.35
	default:
		return 0.30
	}
}

func defaultMinDensity(s Source) float64 {
	switch s {
	case Upload:
		return 0.45
	case CameraLive:
		return 0.30
	default:
		return 0.40
	}
}
