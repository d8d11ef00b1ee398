package statistics

import (
	"strings"
	"testing"

	"image-compressor-go/internal/compressor"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results []compressor.Result
		want    Summary
	}{
		{"empty", nil, Summary{}},
		{
			"two results",
			[]compressor.Result{
				{SourceSize: 2000000, OutputSize: 180000},
				{SourceSize: 5000, OutputSize: 3100},
			},
			Summary{Count: 2, OriginalSize: 2005000, CompressedSize: 183100, Ratio: 90.9, Saved: 1821900},
		},
		{
			"output grew",
			[]compressor.Result{{SourceSize: 1000, OutputSize: 1234}},
			Summary{Count: 1, OriginalSize: 1000, CompressedSize: 1234, Ratio: -23.4, Saved: -234},
		},
		{
			"zero original size",
			[]compressor.Result{{SourceSize: 0, OutputSize: 0}},
			Summary{Count: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Summarize(tt.results)); diff != "" {
				t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummarizeSavedIsExact(t *testing.T) {
	var results []compressor.Result
	for i := int64(1); i <= 50; i++ {
		results = append(results, compressor.Result{SourceSize: i * 7919, OutputSize: i * i * 131})
	}
	s := Summarize(results)
	if s.Saved != s.OriginalSize-s.CompressedSize {
		t.Errorf("Saved = %d, want %d", s.Saved, s.OriginalSize-s.CompressedSize)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 1023, "1023 B"},
		{"exactly 1 KB", 1024, "1.00 KB"},
		{"fractional KB", 1536, "1.50 KB"},
		{"just below 1 MB", 1024*1024 - 1, "1024.00 KB"},
		{"exactly 1 MB", 1024 * 1024, "1.00 MB"},
		{"large", 5 * 1024 * 1024 * 1024, "5120.00 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSize(tt.bytes); got != tt.want {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestGetSummary(t *testing.T) {
	s := Summary{Count: 2, OriginalSize: 4096, CompressedSize: 1024, Ratio: 75, Saved: 3072}
	out := s.GetSummary()
	for _, want := range []string{"Images: 2", "Original Size: 4.00 KB", "Compressed Size: 1.00 KB", "Saved: 3.00 KB (75.0%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	grew := Summary{Count: 1, OriginalSize: 100, CompressedSize: 150, Ratio: -50, Saved: -50}
	if !strings.Contains(grew.GetSummary(), "Saved: -50 B (-50.0%)") {
		t.Errorf("negative savings not rendered:\n%s", grew.GetSummary())
	}
}

func TestGetResultBreakdown(t *testing.T) {
	if got := GetResultBreakdown(nil); got != "No images compressed" {
		t.Errorf("empty breakdown = %q", got)
	}
	out := GetResultBreakdown([]compressor.Result{
		{SourceName: "a.jpg", SourceSize: 2048, OutputSize: 1024, Width: 10, Height: 5},
	})
	if !strings.Contains(out, "a.jpg: 2.00 KB -> 1.00 KB (10x5, 50.0%)") {
		t.Errorf("unexpected breakdown:\n%s", out)
	}
}
