package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
)

type panickyImage struct{}

func (panickyImage) ColorModel() color.Model { return color.NRGBAModel }
func (panickyImage) Bounds() image.Rectangle { return image.Rect(0, 0, 4, 4) }
func (panickyImage) At(x, y int) color.Color { panic("pixel data not readable") }

// plainImage hides the Opaque method, forcing the per-pixel scan.
type plainImage struct {
	img *image.NRGBA
}

func (p plainImage) ColorModel() color.Model { return p.img.ColorModel() }
func (p plainImage) Bounds() image.Rectangle { return p.img.Bounds() }
func (p plainImage) At(x, y int) color.Color { return p.img.At(x, y) }

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name               string
		width, height, max int
		wantW, wantH       int
	}{
		{"downscale landscape", 3000, 2000, 1920, 1920, 1280},
		{"downscale rounds height", 3000, 1999, 1920, 1920, 1279},
		{"round trip scenario", 5000, 3000, 1920, 1920, 1152},
		{"no upscale", 800, 600, 1920, 800, 600},
		{"exactly max", 1920, 1080, 1920, 1920, 1080},
		{"portrait", 1000, 4000, 500, 500, 2000},
		{"tiny height rounds to zero", 4000, 1, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := TargetSize(tt.width, tt.height, tt.max)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("TargetSize(%d, %d, %d) = %dx%d, want %dx%d",
					tt.width, tt.height, tt.max, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTargetSizeNeverIncreasesWidth(t *testing.T) {
	for w := 1; w <= 4000; w += 37 {
		for _, max := range []int{1, 100, 1920} {
			got, _ := TargetSize(w, 100, max)
			if got > w {
				t.Fatalf("TargetSize(%d, 100, %d) width %d exceeds source", w, max, got)
			}
		}
	}
}

func TestHasTransparency(t *testing.T) {
	opaque := imaging.New(8, 8, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	clear := imaging.New(8, 8, color.NRGBA{A: 0})
	onePixel := imaging.Clone(opaque)
	onePixel.SetNRGBA(7, 7, color.NRGBA{R: 1, G: 2, B: 3, A: 254})

	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"nil", nil, false},
		{"empty bounds", image.NewNRGBA(image.Rect(0, 0, 0, 0)), false},
		{"opaque nrgba", opaque, false},
		{"fully transparent", clear, true},
		{"single translucent pixel", onePixel, true},
		{"ycbcr is always opaque", image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420), false},
		{"scan without Opaque method", plainImage{img: onePixel}, true},
		{"scan opaque without Opaque method", plainImage{img: opaque}, false},
		{"unreadable pixels", panickyImage{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasTransparency(tt.img); got != tt.want {
				t.Errorf("HasTransparency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResize(t *testing.T) {
	src := FromImage(imaging.New(300, 200, color.White))

	got := Resize(src, 150, 100)
	if diff := cmp.Diff([2]int{150, 100}, [2]int{got.Width(), got.Height()}); diff != "" {
		t.Errorf("Resize dimensions mismatch (-want +got):\n%s", diff)
	}
	if src.Width() != 300 {
		t.Errorf("source raster mutated: width %d", src.Width())
	}

	same := Resize(src, 300, 200)
	if same.Image() != src.Image() {
		t.Error("Resize to identical size should return the source raster")
	}
}

func TestDraw(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 40, 20), image.YCbCrSubsampleRatio444)

	scaled := Draw(src, 20, 10)
	if scaled.Width() != 20 || scaled.Height() != 10 {
		t.Errorf("Draw scaled = %dx%d, want 20x10", scaled.Width(), scaled.Height())
	}
	copied := Draw(src, 40, 20)
	if copied.Width() != 40 || copied.Height() != 20 {
		t.Errorf("Draw same size = %dx%d, want 40x20", copied.Width(), copied.Height())
	}
	if copied.HasTransparency() {
		t.Error("drawing an opaque source produced transparency")
	}
}

func TestCompositeBackground(t *testing.T) {
	src := FromImage(imaging.New(4, 4, color.NRGBA{A: 0}))
	if !src.HasTransparency() {
		t.Fatal("fixture should be transparent")
	}

	flat := CompositeBackground(src, color.White)
	if flat.HasTransparency() {
		t.Error("composited raster should be opaque")
	}
	if diff := cmp.Diff(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, flat.Image().NRGBAAt(2, 2)); diff != "" {
		t.Errorf("pixel mismatch (-want +got):\n%s", diff)
	}
	if !src.HasTransparency() {
		t.Error("source raster mutated by composite")
	}

	kept := CompositeBackground(src, nil)
	if !kept.HasTransparency() {
		t.Error("nil background must preserve transparency")
	}
}

func TestCompositeBackgroundBlendsTranslucentPixels(t *testing.T) {
	src := FromImage(imaging.New(1, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 128}))
	px := CompositeBackground(src, color.White).Image().NRGBAAt(0, 0)
	if px.A != 255 {
		t.Fatalf("alpha = %d, want 255", px.A)
	}
	if px.R < 120 || px.R > 135 {
		t.Errorf("red channel = %d, want roughly half grey", px.R)
	}
}

func TestEmpty(t *testing.T) {
	var zero Raster
	if !zero.Empty() {
		t.Error("zero Raster should be empty")
	}
	if zero.HasTransparency() {
		t.Error("zero Raster should report no transparency")
	}
	if FromImage(imaging.New(1, 1, color.White)).Empty() {
		t.Error("1x1 raster should not be empty")
	}
}
