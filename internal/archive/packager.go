// Package archive delivers compression results: a single result as a plain
// file, several results as one zip archive.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"image-compressor-go/internal/compressor"
	"image-compressor-go/internal/logger"
	"image-compressor-go/internal/progress"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

// DefaultCompressionLevel is the DEFLATE level used for archive entries.
const DefaultCompressionLevel = 6

// ErrEmptyResult is returned when there is nothing to deliver.
var ErrEmptyResult = errors.New("no compressed images to deliver")

// Packager builds and delivers the output of a batch.
type Packager struct {
	tracker   *progress.Tracker
	deliverer Deliverer
	logger    *logrus.Logger
	level     int
	now       func() time.Time
}

// NewPackager creates a Packager. level is the DEFLATE level (-2..9) for
// archive entries.
func NewPackager(log *logrus.Logger, tracker *progress.Tracker, deliverer Deliverer, level int) *Packager {
	return &Packager{
		tracker:   tracker,
		deliverer: deliverer,
		logger:    log,
		level:     level,
		now:       time.Now,
	}
}

// PackageAndDeliver delivers results and returns the name of the delivered file.
func (p *Packager) PackageAndDeliver(ctx context.Context, results []compressor.Result, format compressor.Format) (string, error) {
	if len(results) == 0 {
		return "", ErrEmptyResult
	}

	log := logger.WithOperation(p.logger, "deliver")

	if len(results) == 1 {
		name := SingleOutputName(results[0].SourceName, format)
		if err := p.deliverer.Deliver(ctx, name, results[0].Output); err != nil {
			return "", fmt.Errorf("deliver %s: %w", name, err)
		}
		log.WithField("file", name).Info("Delivered compressed image")
		return name, nil
	}

	h, err := p.tracker.Begin(progress.PhasePackaging, len(results))
	if err != nil {
		return "", err
	}
	defer h.Release()

	data, err := p.buildArchive(ctx, h, results, format)
	if err != nil {
		return "", err
	}

	name := ArchiveName(p.now())
	if err := p.deliverer.Deliver(ctx, name, data); err != nil {
		return "", fmt.Errorf("deliver %s: %w", name, err)
	}
	log.WithFields(logrus.Fields{
		"file":    name,
		"entries": len(results),
		"bytes":   len(data),
	}).Info("Delivered archive")
	return name, nil
}

func (p *Packager) buildArchive(ctx context.Context, h *progress.Handle, results []compressor.Result, format compressor.Format) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	level := p.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	names := newUniqueNamer()
	modified := p.now()
	for i, r := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.Step(i + 1)

		name := names.next(EntryName(r.SourceName, format))
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(r.Output); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", name, err)
		}
		logger.WithImage(p.logger, r.SourceName, i).WithField("entry", name).Debug("Added archive entry")
	}

	h.Enter(progress.PhaseGenerating, 0)
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
