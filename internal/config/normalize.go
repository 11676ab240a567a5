package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeProfiles()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogDB) == "" {
		c.Paths.CatalogDB = filepath.Join(c.Paths.StateDir, "catalog.db")
	}
	if c.Paths.CatalogDB, err = expandPath(c.Paths.CatalogDB); err != nil {
		return fmt.Errorf("paths.catalog_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogFile) != "" {
		if c.Paths.CatalogFile, err = expandPath(c.Paths.CatalogFile); err != nil {
			return fmt.Errorf("paths.catalog_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizePlayback() {
	if c.Playback.ReleaseDebounceMS == 0 {
		c.Playback.ReleaseDebounceMS = defaultReleaseDebounceMS
	}
	if c.Playback.PosterMaxDim == 0 {
		c.Playback.PosterMaxDim = defaultPosterMaxDim
	}
	if c.Playback.SimLoadDelayMS == 0 {
		c.Playback.SimLoadDelayMS = defaultSimLoadDelayMS
	}
}

// normalizeProfiles lowercases profile names and reinstates the built-in
// dense and gallery profiles when the file omits them. User-defined extra
// profiles pass through untouched.
func (c *Config) normalizeProfiles() {
	normalized := make(map[string]Profile, len(c.Profiles)+2)
	for name, profile := range c.Profiles {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		normalized[key] = profile
	}
	defaults := Default().Profiles
	for _, name := range []string{ProfileDense, ProfileGallery} {
		if _, ok := normalized[name]; !ok {
			normalized[name] = defaults[name]
		}
	}
	c.Profiles = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
