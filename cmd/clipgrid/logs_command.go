package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipgrid/internal/logs"
)

const followWait = 2 * time.Second

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lineCount int
	var follow bool
	var minLevel string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent simulation log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := simulateLogPath(cfg)
			out := cmd.OutOrStdout()

			result, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: -1, Limit: lineCount})
			if err != nil {
				return err
			}
			for _, line := range logs.FilterMinLevel(result.Lines, minLevel) {
				fmt.Fprintln(out, line)
			}
			if !follow {
				if len(result.Lines) == 0 {
					fmt.Fprintf(out, "No log lines at %s\n", path)
				}
				return nil
			}

			followCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			offset := result.Offset
			for {
				res, err := logs.Tail(followCtx, path, logs.TailOptions{
					Offset: offset,
					Follow: true,
					Wait:   followWait,
				})
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				for _, line := range logs.FilterMinLevel(res.Lines, minLevel) {
					fmt.Fprintln(out, line)
				}
				offset = res.Offset
				if followCtx.Err() != nil {
					return nil
				}
			}
		},
	}

	cmd.Flags().IntVar(&lineCount, "lines", 40, "Number of trailing lines to print")
	cmd.Flags().BoolVar(&follow, "follow", false, "Keep waiting for new lines")
	cmd.Flags().StringVar(&minLevel, "level", "", "Minimum level to show (debug, info, warn, error)")
	return cmd
}
