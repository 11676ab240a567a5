package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipgrid/internal/catalog"
	"clipgrid/internal/config"
	"clipgrid/internal/fileutil"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the tile catalog",
	}

	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogSearchCommand(ctx))

	return catalogCmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import tiles from a TOML catalog file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source := cfg.Paths.CatalogFile
			if len(args) == 1 {
				source = strings.TrimSpace(args[0])
			}
			if source == "" {
				return errors.New("no catalog file given and paths.catalog_file is not set")
			}
			source, err = config.ExpandPath(source)
			if err != nil {
				return fmt.Errorf("resolve catalog file: %w", err)
			}

			if err := fileutil.CheckDirAccess(cfg.Paths.StateDir); err != nil {
				return fmt.Errorf("state directory not writable: %w", err)
			}

			lock, err := catalog.AcquireImportLock(cfg.Paths.CatalogDB)
			if err != nil {
				return err
			}
			defer lock.Release()

			tiles, err := catalog.LoadFile(source)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				count, err := store.Import(cmd.Context(), tiles)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tiles from %s\n", count, source)
				return nil
			})
		},
	}
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog tiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				tiles, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(tiles) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Pos", "ID", "Name", "Category", "Source"},
					buildCatalogRows(tiles),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newCatalogSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search catalog tiles by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			return ctx.withStore(func(store *catalog.Store) error {
				tiles, err := store.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				if len(tiles) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No tiles match %q\n", query)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Pos", "ID", "Name", "Category", "Source"},
					buildCatalogRows(tiles),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func buildCatalogRows(tiles []catalog.Tile) [][]string {
	rows := make([][]string, 0, len(tiles))
	for _, t := range tiles {
		rows = append(rows, []string{
			strconv.Itoa(t.Position),
			t.ID,
			t.Name,
			t.Category,
			t.SourceURL,
		})
	}
	return rows
}
