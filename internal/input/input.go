// Package input turns command line paths into the ordered list of images a
// batch works on.
package input

import (
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"image-compressor-go/internal/compressor"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// Loader collects image files from files and directories.
type Loader struct {
	logger     *logrus.Logger
	extensions map[string]struct{}
	recursive  bool
}

// NewLoader returns a Loader. extensions (with leading dot, lower case)
// restrict which files are picked up while walking directories; files named
// explicitly are only checked for an image media type.
func NewLoader(logger *logrus.Logger, extensions []string, recursive bool) *Loader {
	extSet := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		extSet[strings.ToLower(e)] = struct{}{}
	}
	return &Loader{logger: logger, extensions: extSet, recursive: recursive}
}

// Load reads every image under paths, in argument order. Directory contents
// are visited in lexical order.
func (l *Loader) Load(paths []string) ([]compressor.InputImage, error) {
	files, err := l.collect(paths)
	if err != nil {
		return nil, err
	}

	inputs := make([]compressor.InputImage, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		mediaType := MediaType(path, data)
		if !strings.HasPrefix(mediaType, "image/") {
			l.logger.WithFields(logrus.Fields{
				"file":       path,
				"media_type": mediaType,
			}).Warn("Skipping non-image file")
			continue
		}
		inputs = append(inputs, compressor.InputImage{Name: filepath.Base(path), Data: data})
	}
	return inputs, nil
}

// collect expands paths into a list of candidate files.
func (l *Loader) collect(paths []string) ([]string, error) {
	var files []string
	for _, in := range paths {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", in, err)
		}
		if !info.IsDir() {
			files = append(files, in)
			continue
		}

		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				l.logger.Warnf("Error accessing path %s: %v", path, err)
				return nil
			}
			if d.IsDir() {
				if path != in && !l.recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := l.extensions[strings.ToLower(filepath.Ext(path))]; ok {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", in, err)
		}
	}
	return files, nil
}

// MediaType returns the media type declared by the file extension, falling
// back to sniffing the content when the extension is unknown.
func MediaType(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
		return t
	}
	return mimetype.Detect(data).String()
}
