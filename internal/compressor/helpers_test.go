package compressor

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"image-compressor-go/internal/extractor"
	"image-compressor-go/internal/logger"
	"image-compressor-go/internal/progress"

	"github.com/disintegration/imaging"
)

func newTestTranscoder() *Transcoder {
	log := logger.NewDiscard()
	return NewTranscoder(log, extractor.NewEXIFExtractor(log))
}

func newTestCompressor() (*DefaultCompressor, *progress.Tracker) {
	tracker := progress.NewTracker()
	return NewDefaultCompressor(logger.NewDiscard(), newTestTranscoder(), tracker), tracker
}

// gradient returns an opaque image with varying pixels so encoders have
// something to compress.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

// withAlpha returns a w x h image whose left half is fully transparent.
func withAlpha(w, h int) *image.NRGBA {
	img := gradient(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{})
		}
	}
	return img
}

func encodeFixture(t *testing.T, img image.Image, format imaging.Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeOutput(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return img
}

// jpegWithOrientation encodes a w x h JPEG carrying an EXIF orientation tag.
func jpegWithOrientation(t *testing.T, w, h int, orientation uint16) []byte {
	t.Helper()
	plain := encodeFixture(t, gradient(w, h), imaging.JPEG)

	tiff := []byte{
		'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01,
		byte(orientation >> 8), byte(orientation), 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	payload := append([]byte("Exif\x00\x00"), tiff...)
	segLen := len(payload) + 2

	out := []byte{0xff, 0xd8, 0xff, 0xe1, byte(segLen >> 8), byte(segLen)}
	out = append(out, payload...)
	return append(out, plain[2:]...)
}
