package extractor

import (
	"image"

	"github.com/disintegration/imaging"
)

// OrientationExtractor reads the stored orientation of an encoded image.
type OrientationExtractor interface {
	ExtractOrientation(data []byte) (Orientation, error)
}

// Orientation is the EXIF orientation tag value (1-8).
type Orientation int

const (
	OrientationUnknown Orientation = iota
	OrientationNormal
	OrientationFlipH
	OrientationRotate180
	OrientationFlipV
	OrientationTranspose
	OrientationRotate270
	OrientationTransverse
	OrientationRotate90
)

// String returns a human-readable description of the orientation.
func (o Orientation) String() string {
	switch o {
	case OrientationNormal:
		return "Normal"
	case OrientationFlipH:
		return "Mirrored horizontally"
	case OrientationRotate180:
		return "Rotated 180"
	case OrientationFlipV:
		return "Mirrored vertically"
	case OrientationTranspose:
		return "Transposed"
	case OrientationRotate270:
		return "Rotated 90 CW"
	case OrientationTransverse:
		return "Transversed"
	case OrientationRotate90:
		return "Rotated 90 CCW"
	default:
		return "Unknown"
	}
}

// Apply returns img turned upright according to the orientation.
// Normal and unknown orientations return img unchanged.
func (o Orientation) Apply(img image.Image) image.Image {
	switch o {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationRotate270:
		return imaging.Rotate270(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	case OrientationRotate90:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
