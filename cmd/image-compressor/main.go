package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"image-compressor-go/internal/archive"
	"image-compressor-go/internal/compressor"
	"image-compressor-go/internal/config"
	"image-compressor-go/internal/extractor"
	"image-compressor-go/internal/input"
	"image-compressor-go/internal/logger"
	"image-compressor-go/internal/progress"
	"image-compressor-go/internal/raster"
	"image-compressor-go/internal/statistics"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	quiet     bool
	quality   float64
	maxWidth  int
	format    string
	outputDir string
	recursive bool
)

// rootCmd compresses the given images and delivers the result.
var rootCmd = &cobra.Command{
	Use:   "image-compressor [files or directories...]",
	Short: "Resize and re-encode images in bulk",
	Long: `image-compressor scales images down to a maximum width and re-encodes
them as WebP, JPEG or PNG with a chosen quality.

A single image is written as <name>_compressed.<ext>. Several images are
bundled into one compressed_images_<timestamp>.zip archive.

Features:
- Aspect-preserving downscale, never upscales
- EXIF orientation is applied before resizing
- Transparent sources stay transparent in WebP and PNG
- Per-image and total size statistics`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompress(cmd, args)
	},
}

// inspectCmd shows how a single file would be processed.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show dimensions, orientation and transparency of an image",
	Long: `Decodes the file and reports what the compressor sees: the media type,
the stored and oriented dimensions, whether any pixel is transparent and the
size it would be scaled to with the current max width.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")
	rootCmd.PersistentFlags().IntVar(&maxWidth, "max-width", 1920, "maximum output width in pixels")

	rootCmd.Flags().Float64Var(&quality, "quality", 92, "encoder quality from 0 to 100 (ignored for png)")
	rootCmd.Flags().StringVar(&format, "format", "webp", "output format: webp, jpeg or png")
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", ".", "directory the result is written to")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")

	rootCmd.AddCommand(inspectCmd)
}

// runCompress executes a whole batch: load, compress, report, deliver.
func runCompress(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts, err := cfg.CompressionOptions()
	if err != nil {
		return err
	}

	log := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs, err := input.NewLoader(log, cfg.Input.SupportedExtensions, cfg.Input.Recursive).Load(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no images found in %v", args)
	}

	tracker := progress.NewTracker()
	tracker.Subscribe(func(s progress.State) {
		log.WithFields(logrus.Fields{
			"phase":   s.Phase,
			"current": s.Current,
			"total":   s.Total,
		}).Debug(s.String())
	})

	transcoder := compressor.NewTranscoder(log, extractor.NewEXIFExtractor(log))
	results, err := compressor.NewDefaultCompressor(log, transcoder, tracker).CompressAll(ctx, inputs, opts)
	if err != nil {
		return fmt.Errorf("compression failed: %w", err)
	}

	if !quiet {
		fmt.Println(statistics.GetResultBreakdown(results))
		fmt.Println(statistics.Summarize(results).GetSummary())
	}

	packager := archive.NewPackager(log, tracker, archive.NewDirDeliverer(cfg.Output.Directory), cfg.Archive.CompressionLevel)
	name, err := packager.PackageAndDeliver(ctx, results, opts.Format)
	if err != nil {
		return fmt.Errorf("delivery failed: %w", err)
	}

	if !quiet {
		fmt.Printf("\nWrote %s\n", name)
	}
	return nil
}

// runInspect prints what the pipeline would see for one file.
func runInspect(cmd *cobra.Command, filePath string) error {
	if !fileExists(filePath) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := setupLogger(cfg)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	fmt.Printf("Inspecting: %s\n", filePath)
	fmt.Printf("Media type: %s\n", input.MediaType(filePath, data))
	fmt.Printf("Size: %s\n", statistics.FormatSize(int64(len(data))))

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error decoding image: %v\n", err)
		return nil
	}
	stored := img.Bounds()
	fmt.Printf("Stored dimensions: %dx%d\n", stored.Dx(), stored.Dy())

	orientation, err := extractor.NewEXIFExtractor(log).ExtractOrientation(data)
	if err != nil {
		fmt.Printf("Orientation: %s (no EXIF data)\n", orientation)
	} else {
		fmt.Printf("Orientation: %s\n", orientation)
	}

	oriented := orientation.Apply(img)
	w, h := oriented.Bounds().Dx(), oriented.Bounds().Dy()
	tw, th := raster.TargetSize(w, h, cfg.Compression.MaxWidth)
	fmt.Printf("Oriented dimensions: %dx%d\n", w, h)
	fmt.Printf("Target dimensions (max width %d): %dx%d\n", cfg.Compression.MaxWidth, tw, th)
	fmt.Printf("Transparent pixels: %t\n", raster.HasTransparency(oriented))

	return nil
}

// loadConfig loads configuration and applies CLI overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("quality") {
		cfg.Compression.Quality = quality
	}
	if flags.Changed("max-width") {
		cfg.Compression.MaxWidth = maxWidth
	}
	if flags.Changed("format") {
		cfg.Compression.Format = format
	}
	if flags.Changed("out") {
		cfg.Output.Directory = outputDir
	}
	if flags.Changed("recursive") {
		cfg.Input.Recursive = recursive
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger configures and returns a logger.
func setupLogger(cfg *config.Config) *logrus.Logger {
	loggerCfg := logger.LoggerConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		Console:    !quiet,
	}

	if verbose {
		loggerCfg.Level = "debug"
	}
	if quiet {
		loggerCfg.Level = "error"
	}

	log, err := logger.NewLogger(loggerCfg)
	if err != nil {
		log = logrus.New()
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// fileExists returns true if the given path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
