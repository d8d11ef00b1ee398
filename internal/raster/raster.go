package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Raster is a decoded pixel grid with non-premultiplied alpha.
type Raster struct {
	img *image.NRGBA
}

// FromImage copies any decoded image into a Raster.
func FromImage(img image.Image) Raster {
	return Raster{img: imaging.Clone(img)}
}

// Width returns the raster width in pixels.
func (r Raster) Width() int {
	if r.img == nil {
		return 0
	}
	return r.img.Bounds().Dx()
}

// Height returns the raster height in pixels.
func (r Raster) Height() int {
	if r.img == nil {
		return 0
	}
	return r.img.Bounds().Dy()
}

// Empty reports whether the raster has no pixels.
func (r Raster) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Image exposes the raster for encoding.
func (r Raster) Image() *image.NRGBA {
	return r.img
}

// HasTransparency reports whether any pixel of the raster is not fully opaque.
func (r Raster) HasTransparency() bool {
	if r.img == nil {
		return false
	}
	return HasTransparency(r.img)
}

// TargetSize returns the dimensions an image of width x height takes when
// limited to maxWidth. Images are only ever downscaled; the height keeps the
// aspect ratio and is rounded to the nearest pixel.
func TargetSize(width, height, maxWidth int) (int, int) {
	if width <= maxWidth {
		return width, height
	}
	h := math.Round(float64(height) * float64(maxWidth) / float64(width))
	return maxWidth, int(h)
}

// Draw renders img onto a new width x height surface, resampling with a
// Lanczos filter when the size differs.
func Draw(img image.Image, width, height int) Raster {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return Raster{img: imaging.Clone(img)}
	}
	return Raster{img: imaging.Resize(img, width, height, imaging.Lanczos)}
}

// Resize resamples the raster to exactly width x height.
func Resize(r Raster, width, height int) Raster {
	if width == r.Width() && height == r.Height() {
		return r
	}
	return Draw(r.img, width, height)
}

// CompositeBackground flattens the raster over a solid background of the
// same size. A nil background returns the raster untouched.
func CompositeBackground(r Raster, background color.Color) Raster {
	if background == nil || r.img == nil {
		return r
	}
	dst := imaging.New(r.Width(), r.Height(), background)
	return Raster{img: imaging.Overlay(dst, r.img, image.Pt(0, 0), 1.0)}
}
