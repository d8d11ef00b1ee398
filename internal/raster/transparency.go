package raster

import (
	"image"
)

type opaquer interface {
	Opaque() bool
}

// HasTransparency reports whether any pixel of img has an alpha value below
// fully opaque.
//
// Pixel data that cannot be read (nil image, empty bounds, a panicking
// image.Image implementation) counts as fully opaque rather than an error.
func HasTransparency(img image.Image) (transparent bool) {
	defer func() {
		if recover() != nil {
			transparent = false
		}
	}()

	if img == nil {
		return false
	}
	b := img.Bounds()
	if b.Empty() {
		return false
	}

	if o, ok := img.(opaquer); ok {
		return !o.Opaque()
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}
