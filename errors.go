/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the narrow error taxonomy of the OMR core: the
  three reject-before-processing cases. Every other
  pipeline failure is recovered rather than raised and shows up as a
  degraded DecodeResult instead.

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

import "errors"

// ErrInputTooSmall is returned when the input image falls below the
// Image Surface's minimum dimensions.
var ErrInputTooSmall = errors.New("omr: input image too small")

// ErrUnsupportedTemplate is returned when num_items falls outside
// {<=20, <=50, <=100}.
var ErrUnsupportedTemplate = errors.New("omr: unsupported template item count")

// ErrUnsupportedChoices is returned when choices falls outside 2..8.
var ErrUnsupportedChoices = errors.New("omr: unsupported choice count")
