package config

const (
	defaultStateDir          = "~/.local/share/clipgrid"
	defaultLogDir            = "~/.local/share/clipgrid/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultReleaseDebounceMS = 500
	defaultPosterMaxDim      = 320
	defaultSimLoadDelayMS    = 40

	defaultDenseMargin     = 200.0
	defaultDenseEagerTiles = 4
	defaultGalleryMargin   = 600.0
	defaultGalleryEager    = 2

	// ProfileDense is the in-panel grid: small tiles, tight margin, muted.
	ProfileDense = "dense"
	// ProfileGallery is the full-screen gallery: large tiles, wide margin,
	// per-tile audio toggling enabled.
	ProfileGallery = "gallery"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Playback: Playback{
			ReleaseDebounceMS: defaultReleaseDebounceMS,
			PosterMaxDim:      defaultPosterMaxDim,
			SimLoadDelayMS:    defaultSimLoadDelayMS,
		},
		Profiles: map[string]Profile{
			ProfileDense: {
				Margin:     defaultDenseMargin,
				EagerTiles: defaultDenseEagerTiles,
				Audio:      false,
			},
			ProfileGallery: {
				Margin:     defaultGalleryMargin,
				EagerTiles: defaultGalleryEager,
				Audio:      true,
			},
		},
	}
}
