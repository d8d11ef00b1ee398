package extractor

import (
	"bytes"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"
)

// EXIFExtractor reads orientation from EXIF metadata embedded in JPEG and TIFF data.
type EXIFExtractor struct {
	logger *logrus.Logger
}

// NewEXIFExtractor returns a new EXIFExtractor.
func NewEXIFExtractor(logger *logrus.Logger) *EXIFExtractor {
	return &EXIFExtractor{logger: logger}
}

// ExtractOrientation returns the EXIF orientation of an encoded image.
// When the data has no readable EXIF block the error is returned together
// with OrientationNormal, so callers may ignore it. A missing or
// out-of-range tag yields OrientationNormal without error.
func (e *EXIFExtractor) ExtractOrientation(data []byte) (Orientation, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if x == nil {
		if err == nil {
			err = fmt.Errorf("no EXIF data")
		}
		return OrientationNormal, fmt.Errorf("failed to decode EXIF: %w", err)
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return OrientationNormal, nil
	}
	v, err := tag.Int(0)
	if err != nil {
		return OrientationNormal, fmt.Errorf("invalid orientation tag: %w", err)
	}

	o := Orientation(v)
	if o < OrientationNormal || o > OrientationRotate90 {
		e.logger.Debugf("Ignoring out-of-range EXIF orientation %d", v)
		return OrientationNormal, nil
	}
	e.logger.Debugf("Extracted EXIF orientation: %s", o)
	return o, nil
}
