package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default returns the built-in configuration.
func Default() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	return &Config{
		Paths: Paths{
			OutputDir: ".",
			CacheDB:   filepath.Join(cacheDir, "subsrs", "media.db"),
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Export: Export{
			AudioBitrate: "128k",
			ImageWidth:   640,
			ImageQuality: 3,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) normalize() {
	defaults := Default()
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaults.Paths.OutputDir
	}
	if strings.TrimSpace(c.Paths.CacheDB) == "" {
		c.Paths.CacheDB = defaults.Paths.CacheDB
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaults.Tools.FFmpeg
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = defaults.Tools.FFprobe
	}
	if strings.TrimSpace(c.Export.AudioBitrate) == "" {
		c.Export.AudioBitrate = defaults.Export.AudioBitrate
	}
	if c.Export.ImageWidth <= 0 {
		c.Export.ImageWidth = defaults.Export.ImageWidth
	}
	if c.Export.ImageQuality <= 0 {
		c.Export.ImageQuality = defaults.Export.ImageQuality
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
}
