package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	CacheDB   string `toml:"cache_db"`
}

// Tools names the external binaries the exporter shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Export controls the shape of extracted media clips.
type Export struct {
	AudioBitrate string `toml:"audio_bitrate"`
	ImageWidth   int    `toml:"image_width"`
	ImageQuality int    `toml:"image_quality"`
}

// Logging controls log verbosity and output format.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Export  Export  `toml:"export"`
	Logging Logging `toml:"logging"`
}

// SampleConfig returns the annotated sample configuration shipped with the
// binary.
func SampleConfig() string {
	return sampleConfig
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "subsrs", "config.toml")
	}
	return filepath.Join(".", "subsrs.toml")
}

// Load reads configuration from path, falling back to DefaultPath when path
// is empty. An absent file at the default location yields the defaults; an
// absent file at an explicitly requested path is an error.
func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnsureDirectories creates the directories the tool writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, filepath.Dir(c.Paths.CacheDB)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}
