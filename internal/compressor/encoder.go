package compressor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// background returns the fill applied under the resized image, or nil for none.
// JPEG has no alpha channel and is always flattened onto white. WebP is
// flattened only when the source is fully opaque; PNG keeps transparency.
func background(format Format, sourceTransparent bool) color.Color {
	if !format.SupportsAlpha() {
		return color.White
	}
	if format == FormatWebP && !sourceTransparent {
		return color.White
	}
	return nil
}

// encode writes img in the target format. quality is on a 0..1 scale and is
// only forwarded to lossy encoders.
func encode(img *image.NRGBA, format Format, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality(quality)))
	case FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case FormatWebP:
		err = encodeWebP(&buf, img, quality)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncode, format, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: %s encoder produced no data", ErrEncode, format)
	}
	return buf.Bytes(), nil
}

// jpegQuality maps 0..1 onto the encoder's integer 1-100 scale. The standard
// encoder clamps values outside that range.
func jpegQuality(q float64) int {
	return int(math.Round(q * 100))
}

// webpQuality maps 0..1 onto libwebp's 0-100 scale. libwebp rejects values
// outside that range, so they are clamped here.
func webpQuality(q float64) float32 {
	return float32(math.Max(0, math.Min(100, q*100)))
}

func encodeWebP(buf *bytes.Buffer, img *image.NRGBA, quality float64) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, webpQuality(quality))
	if err != nil {
		return err
	}
	return webp.Encode(buf, img, opts)
}
