package compressor

import (
	"context"
	"fmt"
	"time"

	"image-compressor-go/internal/logger"
	"image-compressor-go/internal/progress"

	"github.com/sirupsen/logrus"
)

// DefaultCompressor is the default implementation of the Compressor interface.
// It transcodes inputs one after another on the calling goroutine so that only
// one decoded image is held in memory at a time.
type DefaultCompressor struct {
	transcoder *Transcoder
	tracker    *progress.Tracker
	logger     *logrus.Logger
}

// NewDefaultCompressor creates a new DefaultCompressor reporting to tracker.
func NewDefaultCompressor(log *logrus.Logger, transcoder *Transcoder, tracker *progress.Tracker) *DefaultCompressor {
	return &DefaultCompressor{
		transcoder: transcoder,
		tracker:    tracker,
		logger:     log,
	}
}

// CompressAll transcodes every input in order.
func (c *DefaultCompressor) CompressAll(ctx context.Context, inputs []InputImage, opts Options) ([]Result, error) {
	h, err := c.tracker.Begin(progress.PhaseCompressing, len(inputs))
	if err != nil {
		return nil, err
	}
	defer h.Release()

	log := logger.WithOperation(c.logger, "compress")
	log.WithFields(logrus.Fields{
		"count":     len(inputs),
		"quality":   opts.Quality,
		"max_width": opts.MaxWidth,
		"format":    opts.Format,
	}).Info("Starting compression")

	startGlobal := time.Now()
	results := make([]Result, 0, len(inputs))
	quality := opts.Quality / 100

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, &ItemError{Index: i, Name: in.Name, Err: err}
		}
		h.Step(i + 1)

		start := time.Now()
		out, err := c.transcoder.Transcode(ctx, in.Data, quality, opts.MaxWidth, opts.Format)
		if err != nil {
			logger.WithImage(c.logger, in.Name, i).Errorf("Compression error: %v", err)
			return nil, &ItemError{Index: i, Name: in.Name, Err: err}
		}

		res := Result{
			SourceName: in.Name,
			SourceSize: in.Size(),
			Output:     out.Data,
			OutputSize: int64(len(out.Data)),
			Width:      out.Width,
			Height:     out.Height,
		}
		results = append(results, res)

		logger.WithImage(c.logger, in.Name, i).WithFields(logrus.Fields{
			"original_size":   res.SourceSize,
			"compressed_size": res.OutputSize,
			"saved_percent":   fmt.Sprintf("%.1f", res.PercentageSaved()),
			"duration":        time.Since(start).String(),
		}).Info("Image compressed")
	}

	log.WithField("duration", time.Since(startGlobal).String()).Info("Compression completed")
	return results, nil
}
