package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clipgrid/internal/catalog"
	"clipgrid/internal/config"
	"clipgrid/internal/grid"
	"clipgrid/internal/logging"
	"clipgrid/internal/media"
	"clipgrid/internal/poster"
	"clipgrid/internal/tile"
	"clipgrid/internal/viewport"
)

// Layout used by the scripted session: a single column of 16:9 tiles
// scrolled through a fixed-size viewport.
const (
	simTileWidth    = 480.0
	simTileHeight   = 270.0
	simTileGap      = 24.0
	simViewportWide = 480.0
	simViewportTall = 960.0
)

func newSimulateCommand(ctx *commandContext) *cobra.Command {
	var profileName string
	var filterQuery string
	var tileLimit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted scroll session against the catalog",
		Long: `Simulate drives a grid through a scripted scroll session: tiles mount as
they come near the viewport, release after the debounce window when they
leave, and posters captured from first frames survive into later phases.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			profile, err := cfg.GridProfile(profileName)
			if err != nil {
				return err
			}

			var tiles []catalog.Tile
			err = ctx.withStore(func(store *catalog.Store) error {
				var listErr error
				tiles, listErr = store.List(cmd.Context())
				return listErr
			})
			if err != nil {
				return err
			}
			if len(tiles) == 0 {
				return errors.New("catalog is empty; run `clipgrid catalog import` first")
			}
			if tileLimit > 0 && len(tiles) > tileLimit {
				tiles = tiles[:tileLimit]
			}

			logger, err := newSimulationLogger(cfg, verbose)
			if err != nil {
				return err
			}
			logger = logger.With(logging.String(logging.FieldProfile, profileName))

			sim := &simulation{
				out:         cmd.OutOrStdout(),
				color:       shouldColorize(cmd.OutOrStdout()),
				cfg:         cfg,
				profile:     profile,
				profileName: profileName,
				tiles:       tiles,
				filter:      filterQuery,
				logger:      logger,
			}
			return sim.run()
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", config.ProfileGallery, "Grid profile to drive")
	cmd.Flags().StringVar(&filterQuery, "filter", "", "Name filter applied mid-session")
	cmd.Flags().IntVar(&tileLimit, "tiles", 0, "Limit the number of catalog tiles (0 = all)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Mirror structured logs to stderr")
	return cmd
}

// simulateLogPath is where simulation runs write structured logs; the logs
// command reads the same file.
func simulateLogPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "simulate.log")
}

func newSimulationLogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	paths := []string{simulateLogPath(cfg)}
	level := cfg.Logging.Level
	if verbose {
		paths = append(paths, "stderr")
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
	})
}

type simulation struct {
	out         io.Writer
	color       bool
	cfg         *config.Config
	profile     config.Profile
	profileName string
	tiles       []catalog.Tile
	filter      string
	logger      *slog.Logger

	grid     *grid.Grid
	loader   *media.SimulatedLoader
	posters  *poster.Cache
	selected []string
}

func (s *simulation) run() error {
	s.loader = media.NewSimulatedLoader(s.cfg.SimLoadDelay(), s.cfg.Playback.PosterMaxDim)
	s.posters = poster.NewCache()

	opts := grid.Options{
		Margin:   s.profile.Margin,
		Debounce: s.cfg.ReleaseDebounce(),
		Eager:    s.profile.EagerTiles,
		Audio:    s.profile.Audio,
	}
	onSelect := func(t catalog.Tile) {
		s.selected = append(s.selected, t.Name)
	}
	s.grid = grid.New(s.tiles, s.loader, s.posters, s.logger, opts, onSelect)
	defer s.grid.Close()

	runID := uuid.NewString()
	fmt.Fprintf(s.out, "Simulation %s: profile %q, %d tiles\n\n", runID, s.profileName, len(s.tiles))

	for i, t := range s.tiles {
		bounds := viewport.Rect{
			X:      0,
			Y:      float64(i) * (simTileHeight + simTileGap),
			Width:  simTileWidth,
			Height: simTileHeight,
		}
		if err := s.grid.PlaceTile(t.ID, bounds); err != nil {
			return err
		}
	}

	s.scrollTo(0)
	s.settle()
	s.printStatus("Viewport at top")

	// Mounts happen synchronously on viewport updates, so the next status
	// still sees the departed tiles inside their release windows.
	middle := s.middleScroll()
	s.scrollTo(middle)
	s.printStatus(fmt.Sprintf("Scrolled to y=%.0f (release windows pending)", middle))

	s.settle()
	s.waitReleaseWindow()
	s.printStatus("After release window")

	s.runInteractions()

	if s.filter != "" {
		s.grid.SetFilter(s.filter)
		s.waitReleaseWindow()
		s.printStatus(fmt.Sprintf("Filter %q applied", s.filter))
	}

	s.scrollTo(0)
	s.settle()
	s.waitReleaseWindow()
	s.printStatus("Back at top, releases settled")

	s.printSummary()
	return nil
}

// middleScroll centers the viewport on the tile column, clamped to zero for
// short catalogs.
func (s *simulation) middleScroll() float64 {
	total := float64(len(s.tiles))*(simTileHeight+simTileGap) - simTileGap
	middle := (total - simViewportTall) / 2
	if middle < 0 {
		return 0
	}
	return middle
}

func (s *simulation) scrollTo(y float64) {
	s.grid.UpdateViewport(viewport.Rect{
		X:      0,
		Y:      y,
		Width:  simViewportWide,
		Height: simViewportTall,
	})
}

// settle waits for pending attaches and first-frame callbacks.
func (s *simulation) settle() {
	time.Sleep(s.cfg.SimLoadDelay() + 50*time.Millisecond)
}

// waitReleaseWindow waits past the debounce so pending releases complete.
func (s *simulation) waitReleaseWindow() {
	time.Sleep(s.cfg.ReleaseDebounce() + 50*time.Millisecond)
}

// runInteractions taps the first mounted tile and, when the profile allows
// audio, toggles focus across the first two mounted tiles.
func (s *simulation) runInteractions() {
	for _, line := range renderSectionHeader("Interactions", s.color) {
		fmt.Fprintln(s.out, line)
	}

	mounted := make([]grid.TileStatus, 0, 2)
	for _, st := range s.grid.Status() {
		if st.State == tile.StateMounted {
			mounted = append(mounted, st)
		}
		if len(mounted) == 2 {
			break
		}
	}
	if len(mounted) == 0 {
		fmt.Fprintln(s.out, renderStatusLine("Interactions", statusWarn, "no mounted tiles to interact with", s.color))
		fmt.Fprintln(s.out)
		return
	}

	first := mounted[0]
	if err := s.grid.HandleSelect(first.ID); err == nil {
		fmt.Fprintln(s.out, renderStatusLine("Select", statusOK, fmt.Sprintf("%s (%s)", first.ID, first.Name), s.color))
	}

	if !s.profile.Audio {
		fmt.Fprintln(s.out, renderStatusLine("Audio", statusInfo, "toggling disabled for this profile", s.color))
		fmt.Fprintln(s.out)
		return
	}

	for _, target := range mounted {
		focused, err := s.grid.HandleAudioToggle(target.ID)
		if err != nil {
			fmt.Fprintln(s.out, renderStatusLine("Audio", statusWarn, err.Error(), s.color))
			continue
		}
		if focused {
			fmt.Fprintln(s.out, renderStatusLine("Audio", statusOK, fmt.Sprintf("focus granted to %s", target.ID), s.color))
		} else {
			fmt.Fprintln(s.out, renderStatusLine("Audio", statusInfo, fmt.Sprintf("focus released by %s", target.ID), s.color))
		}
	}
	fmt.Fprintln(s.out)
}

func (s *simulation) printStatus(title string) {
	for _, line := range renderSectionHeader(title, s.color) {
		fmt.Fprintln(s.out, line)
	}

	statuses := s.grid.Status()
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		rows = append(rows, []string{
			st.ID,
			st.Name,
			colorizeState(st.State, s.color),
			st.View.String(),
			yesNo(st.Focused),
		})
	}
	fmt.Fprintln(s.out, renderTable(
		[]string{"ID", "Name", "State", "View", "Audio"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintln(s.out)
}

func (s *simulation) printSummary() {
	for _, line := range renderSectionHeader("Session summary", s.color) {
		fmt.Fprintln(s.out, line)
	}

	rows := make([][]string, 0, len(s.tiles))
	for _, t := range s.tiles {
		_, hasPoster := s.posters.Get(t.ID)
		rows = append(rows, []string{
			t.ID,
			t.Name,
			strconv.Itoa(s.loader.AttachCount(t.ID)),
			yesNo(hasPoster),
		})
	}
	fmt.Fprintln(s.out, renderTable(
		[]string{"ID", "Name", "Attaches", "Poster"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))

	fmt.Fprintln(s.out, renderStatusLine("Posters", statusOK, fmt.Sprintf("%d captured", s.posters.Len()), s.color))
	fmt.Fprintln(s.out, renderStatusLine("Live resources", statusInfo, strconv.Itoa(s.loader.LiveCount()), s.color))
	focus := s.grid.AudioFocus()
	if focus == "" {
		focus = "none"
	}
	fmt.Fprintln(s.out, renderStatusLine("Audio focus", statusInfo, focus, s.color))
	fmt.Fprintln(s.out, renderStatusLine("Selections", statusInfo, strconv.Itoa(len(s.selected)), s.color))
}
