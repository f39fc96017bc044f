/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error Image.Validate wraps when an
  image is below the minimum dimensions. The omr package defines the
  OMR core's own sentinel errors and reports this case as its
  ErrInputTooSmall.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

package surface

import "errors"

// ErrInputTooSmall is returned when an image falls below MinWidth or
// MinHeight.
var ErrInputTooSmall = errors.New("surface: input image too small")
