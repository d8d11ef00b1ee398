package archive

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"image-compressor-go/internal/compressor"
)

const (
	outputSuffix  = "_compressed"
	archivePrefix = "compressed_images_"
	// timestampLayout is ISO 8601 to the second with colons replaced by dashes.
	timestampLayout = "2006-01-02T15-04-05"
)

// SingleOutputName names a result delivered on its own: the source name
// without its last extension, plus the suffix and the format extension.
func SingleOutputName(sourceName string, format compressor.Format) string {
	base := filepath.Base(sourceName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s%s.%s", base, outputSuffix, format.Extension())
}

// EntryName names a result inside an archive: the source name up to its
// first dot, plus the suffix and the format extension.
func EntryName(sourceName string, format compressor.Format) string {
	base := filepath.Base(sourceName)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s%s.%s", base, outputSuffix, format.Extension())
}

// ArchiveName returns the archive file name for a run started at t (UTC).
func ArchiveName(t time.Time) string {
	return archivePrefix + t.UTC().Format(timestampLayout) + ".zip"
}

// uniqueNamer hands out entry names, adding a counter to repeats.
type uniqueNamer struct {
	used map[string]struct{}
}

func newUniqueNamer() *uniqueNamer {
	return &uniqueNamer{used: make(map[string]struct{})}
}

// next returns name, or name with "_1", "_2", ... before the extension when
// it was already taken.
func (u *uniqueNamer) next(name string) string {
	if _, taken := u.used[name]; !taken {
		u.used[name] = struct{}{}
		return name
	}

	ext := filepath.Ext(name)
	nameWithoutExt := strings.TrimSuffix(name, ext)
	counter := 1
	for {
		candidate := fmt.Sprintf("%s_%d%s", nameWithoutExt, counter, ext)
		if _, taken := u.used[candidate]; !taken {
			u.used[candidate] = struct{}{}
			return candidate
		}
		counter++
	}
}
