package config

import "fmt"

var validLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

var validFormats = map[string]struct{}{
	"console": {}, "json": {},
}

// Validate rejects configuration values that would only fail later and
// further away from the user's typo.
func (c *Config) Validate() error {
	if _, ok := validLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("config: unsupported log level %q", c.Logging.Level)
	}
	if _, ok := validFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("config: unsupported log format %q", c.Logging.Format)
	}
	if c.Export.ImageQuality > 31 {
		return fmt.Errorf("config: image_quality %d out of range (1-31)", c.Export.ImageQuality)
	}
	return nil
}
