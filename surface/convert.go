/*
NAME
  convert.go

DESCRIPTION
  convert.go bridges Image and the standard library's image.Image, for
  callers that acquire pixels from decoded PNG/JPEG files or hand an
  annotated copy back to an encoder.

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

import "image"

// FromImage copies src into a new Image. Any source colour model is
// accepted; components are reduced to 8 bits per channel.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	im := NewImage(b.Dx(), b.Dy())

	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == 4*im.W {
		copy(im.Pix, rgba.Pix[:len(im.Pix)])
		return im
	}

	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			im.Set(x, y, uint8(r>>8), uint8(g>>8), uint8(bl>>8), uint8(a>>8))
		}
	}
	return im
}

// ToImage copies im into a standard library RGBA image.
func ToImage(im *Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.W, im.H))
	copy(out.Pix, im.Pix)
	return out
}
