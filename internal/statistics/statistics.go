package statistics

import (
	"fmt"
	"math"
	"strings"

	"image-compressor-go/internal/compressor"
)

// Summary aggregates sizes over a set of compression results.
type Summary struct {
	Count          int     `json:"count"`
	OriginalSize   int64   `json:"original_size"`
	CompressedSize int64   `json:"compressed_size"`
	Ratio          float64 `json:"ratio"` // percent saved, one decimal
	Saved          int64   `json:"saved"`
}

// Summarize totals the results. An empty list yields the zero Summary.
func Summarize(results []compressor.Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	s := Summary{Count: len(results)}
	for _, r := range results {
		s.OriginalSize += r.SourceSize
		s.CompressedSize += r.OutputSize
	}
	s.Saved = s.OriginalSize - s.CompressedSize
	if s.OriginalSize > 0 {
		ratio := (1 - float64(s.CompressedSize)/float64(s.OriginalSize)) * 100
		s.Ratio = math.Round(ratio*10) / 10
	}
	return s
}

// GetSummary returns a formatted summary for terminal output.
func (s Summary) GetSummary() string {
	return fmt.Sprintf(`Compression Summary:
		Images: %d
		Original Size: %s
		Compressed Size: %s
		Saved: %s (%.1f%%)`,
		s.Count,
		FormatSize(s.OriginalSize),
		FormatSize(s.CompressedSize),
		formatSigned(s.Saved),
		s.Ratio)
}

// GetResultBreakdown returns one line per result.
func GetResultBreakdown(results []compressor.Result) string {
	if len(results) == 0 {
		return "No images compressed"
	}

	var b strings.Builder
	b.WriteString("Results:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "  %s: %s -> %s (%dx%d, %.1f%%)\n",
			r.SourceName,
			FormatSize(r.SourceSize),
			FormatSize(r.OutputSize),
			r.Width, r.Height,
			r.PercentageSaved())
	}
	return b.String()
}

// FormatSize returns a human-readable size using 1024-based units:
// whole bytes below 1 KB, two decimals above.
func FormatSize(bytes int64) string {
	const unit = 1024
	switch {
	case bytes < unit:
		return fmt.Sprintf("%d B", bytes)
	case bytes < unit*unit:
		return fmt.Sprintf("%.2f KB", float64(bytes)/unit)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(unit*unit))
	}
}

// formatSigned prefixes negative savings with a minus sign.
func formatSigned(bytes int64) string {
	if bytes < 0 {
		return "-" + FormatSize(-bytes)
	}
	return FormatSize(bytes)
}
