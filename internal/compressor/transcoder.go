package compressor

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"image-compressor-go/internal/extractor"
	"image-compressor-go/internal/raster"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	// WebP inputs; imaging registers the remaining decoders.
	_ "golang.org/x/image/webp"
)

// Encoded is the output of a single transcode.
type Encoded struct {
	Data   []byte
	Width  int
	Height int
}

// Transcoder decodes, resizes, flattens and re-encodes one image at a time.
// It keeps no state between calls.
type Transcoder struct {
	logger      *logrus.Logger
	orientation extractor.OrientationExtractor
}

// NewTranscoder creates a Transcoder. A nil orientation extractor disables
// EXIF orientation correction.
func NewTranscoder(logger *logrus.Logger, orientation extractor.OrientationExtractor) *Transcoder {
	return &Transcoder{logger: logger, orientation: orientation}
}

// Transcode re-encodes data to format, downscaling to maxWidth when wider.
// quality is on a 0..1 scale and ignored for PNG.
func (t *Transcoder) Transcode(ctx context.Context, data []byte, quality float64, maxWidth int, format Format) (Encoded, error) {
	if err := ctx.Err(); err != nil {
		return Encoded{}, err
	}

	img, err := t.decode(data)
	if err != nil {
		return Encoded{}, err
	}

	source := raster.FromImage(img)
	width, height := raster.TargetSize(source.Width(), source.Height(), maxWidth)
	if source.Empty() || width <= 0 || height <= 0 {
		return Encoded{}, fmt.Errorf("%w: %dx%d source, %dx%d target",
			ErrSurfaceUnavailable, source.Width(), source.Height(), width, height)
	}

	transparent := false
	if format == FormatWebP {
		transparent = source.HasTransparency()
	}

	surface := raster.Resize(source, width, height)
	surface = raster.CompositeBackground(surface, background(format, transparent))

	out, err := encode(surface.Image(), format, quality)
	if err != nil {
		return Encoded{}, err
	}

	t.logger.WithFields(logrus.Fields{
		"source_width":  source.Width(),
		"source_height": source.Height(),
		"width":         width,
		"height":        height,
		"format":        format,
		"transparent":   transparent,
		"bytes":         len(out),
	}).Debug("Transcoded image")

	return Encoded{Data: out, Width: width, Height: height}, nil
}

// decode turns data into an upright image. Orientation comes from the
// injected extractor instead of imaging.AutoOrientation so that it can be
// switched off with a nil extractor and unreadable EXIF data gets logged.
func (t *Transcoder) decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if t.orientation == nil {
		return img, nil
	}

	o, err := t.orientation.ExtractOrientation(data)
	if err != nil {
		t.logger.Debugf("No orientation applied: %v", err)
		return img, nil
	}
	return o.Apply(img), nil
}
