package testsupport

import (
	"path/filepath"
	"testing"

	"clipgrid/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Playback windows are shortened so lifecycle tests finish quickly.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.CatalogDB = filepath.Join(base, "state", "catalog.db")
	cfgVal.Paths.CatalogFile = filepath.Join(base, "catalog.toml")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Playback.ReleaseDebounceMS = 40
	cfgVal.Playback.SimLoadDelayMS = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithReleaseDebounce overrides the release debounce window on the test config.
func WithReleaseDebounce(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Playback.ReleaseDebounceMS = ms
	}
}

// WithSimLoadDelay overrides the simulated load delay on the test config.
func WithSimLoadDelay(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Playback.SimLoadDelayMS = ms
	}
}

// WithProfile adds or replaces a grid profile on the test config.
func WithProfile(name string, profile config.Profile) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Profiles == nil {
			b.cfg.Profiles = map[string]config.Profile{}
		}
		b.cfg.Profiles[name] = profile
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
