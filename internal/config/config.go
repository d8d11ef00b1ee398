package config

import (
	"fmt"
	"strings"

	"image-compressor-go/internal/compressor"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	Compression CompressionConfig `mapstructure:"compression"`
	Input       InputConfig       `mapstructure:"input"`
	Output      OutputConfig      `mapstructure:"output"`
	Archive     ArchiveConfig     `mapstructure:"archive"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// CompressionConfig contains the options applied to every image of a batch
type CompressionConfig struct {
	Quality  float64 `mapstructure:"quality"`
	MaxWidth int     `mapstructure:"max_width"`
	Format   string  `mapstructure:"format"`
}

// InputConfig controls which files are picked up from directories
type InputConfig struct {
	SupportedExtensions []string `mapstructure:"supported_extensions"`
	Recursive           bool     `mapstructure:"recursive"`
}

// OutputConfig controls where results are delivered
type OutputConfig struct {
	Directory string `mapstructure:"directory"`
}

// ArchiveConfig contains zip settings for multi-image batches
type ArchiveConfig struct {
	CompressionLevel int `mapstructure:"compression_level"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Compression: CompressionConfig{
			Quality:  92,
			MaxWidth: 1920,
			Format:   string(compressor.FormatWebP),
		},
		Input: InputConfig{
			SupportedExtensions: []string{
				".jpg", ".jpeg", ".png", ".webp", ".gif",
				".bmp", ".tiff", ".tif",
			},
			Recursive: false,
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Archive: ArchiveConfig{
			CompressionLevel: 6,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			FilePath:   "",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	v := viper.New()

	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config file in current directory and home directory
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.image-compressor")
		v.AddConfigPath("/etc/image-compressor")
	}

	// Defaults make every key visible to AutomaticEnv.
	setDefaults(v, config)
	v.SetEnvPrefix("IMAGE_COMPRESSOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("compression.quality", c.Compression.Quality)
	v.SetDefault("compression.max_width", c.Compression.MaxWidth)
	v.SetDefault("compression.format", c.Compression.Format)
	v.SetDefault("input.supported_extensions", c.Input.SupportedExtensions)
	v.SetDefault("input.recursive", c.Input.Recursive)
	v.SetDefault("output.directory", c.Output.Directory)
	v.SetDefault("archive.compression_level", c.Archive.CompressionLevel)
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
	v.SetDefault("logging.file_path", c.Logging.FilePath)
	v.SetDefault("logging.max_size", c.Logging.MaxSize)
	v.SetDefault("logging.max_backups", c.Logging.MaxBackups)
	v.SetDefault("logging.max_age", c.Logging.MaxAge)
	v.SetDefault("logging.compress", c.Logging.Compress)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	format, err := compressor.ParseFormat(c.Compression.Format)
	if err != nil {
		return err
	}
	c.Compression.Format = string(format)

	if c.Compression.MaxWidth <= 0 {
		return fmt.Errorf("max_width must be positive, got %d", c.Compression.MaxWidth)
	}

	// Quality is passed through unchecked; encoders clamp it.

	if c.Archive.CompressionLevel < -2 || c.Archive.CompressionLevel > 9 {
		return fmt.Errorf("invalid archive compression_level: %d (valid: -2..9)", c.Archive.CompressionLevel)
	}

	c.Input.SupportedExtensions = normalizeExtensions(c.Input.SupportedExtensions)

	if c.Output.Directory == "" {
		c.Output.Directory = "."
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// CompressionOptions returns the batch options described by the configuration.
func (c *Config) CompressionOptions() (compressor.Options, error) {
	format, err := compressor.ParseFormat(c.Compression.Format)
	if err != nil {
		return compressor.Options{}, err
	}
	return compressor.Options{
		Quality:  c.Compression.Quality,
		MaxWidth: c.Compression.MaxWidth,
		Format:   format,
	}, nil
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, len(extensions))
	for i, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[i] = ext
	}
	return normalized
}
