package compressor

import (
	"context"
)

// InputImage is a named encoded image supplied by the caller.
type InputImage struct {
	Name string
	Data []byte
}

// Size returns the byte length of the encoded input.
func (in InputImage) Size() int64 {
	return int64(len(in.Data))
}

// Options defines the parameters applied to every image of a batch.
//
// Quality is on a 0-100 scale and may be fractional. It is not validated:
// the target encoder clamps or rejects out-of-range values itself.
type Options struct {
	Quality  float64
	MaxWidth int
	Format   Format
}

// Result describes the outcome of transcoding a single input.
type Result struct {
	SourceName string
	SourceSize int64
	Output     []byte
	OutputSize int64
	Width      int
	Height     int
}

// PercentageSaved returns how much smaller the output is than the source, in percent.
// Negative values mean the output grew.
func (r Result) PercentageSaved() float64 {
	if r.SourceSize == 0 {
		return 0
	}
	return float64(r.SourceSize-r.OutputSize) * 100 / float64(r.SourceSize)
}

// Compressor defines the interface for batch image compression.
type Compressor interface {
	// CompressAll transcodes inputs in order and returns one result per input.
	// The first failing input aborts the batch and no results are returned.
	CompressAll(ctx context.Context, inputs []InputImage, opts Options) ([]Result, error)
}
