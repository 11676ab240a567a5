package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateProfiles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.ReleaseDebounceMS <= 0 {
		return errors.New("playback.release_debounce_ms must be positive")
	}
	if c.Playback.PosterMaxDim <= 0 {
		return errors.New("playback.poster_max_dim must be positive")
	}
	if c.Playback.SimLoadDelayMS < 0 {
		return errors.New("playback.sim_load_delay_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateProfiles() error {
	if len(c.Profiles) == 0 {
		return errors.New("at least one grid profile must be defined")
	}
	for name, profile := range c.Profiles {
		if profile.Margin < 0 {
			return fmt.Errorf("profiles.%s.margin must be >= 0", name)
		}
		if profile.EagerTiles < 0 {
			return fmt.Errorf("profiles.%s.eager_tiles must be >= 0", name)
		}
	}
	return nil
}
