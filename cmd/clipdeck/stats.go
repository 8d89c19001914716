package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const recentProjects = 5

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if watch {
				return a.watchStats(cmd.Context(), interval)
			}
			return a.showStats(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval for --watch (default from config)")
	return cmd
}

// showStats loads stats and the project list in parallel.
func (a *app) showStats(ctx context.Context) error {
	var stats *dashboard.Stats
	var projects []project.Project

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = a.client.Dashboard.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = a.client.Projects.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if len(projects) > recentProjects {
		projects = projects[:recentProjects]
	}
	if a.json {
		return writeJSON(a.out, map[string]any{"stats": stats, "recent_projects": projects})
	}
	printStats(a.out, stats, time.Now())
	fmt.Fprintln(a.out)
	printProjects(a.out, projects)
	return nil
}

// watchStats prints a snapshot on every refresh until ctx is cancelled.
func (a *app) watchStats(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = a.cfg.Cache.StatsRefresh
	}
	for update := range a.client.Dashboard.Watch(ctx, interval) {
		if update.Err != nil {
			a.logger.Warn("stats refresh failed", "error", update.Err)
			continue
		}
		if a.json {
			if err := writeJSON(a.out, update.Stats); err != nil {
				return err
			}
			continue
		}
		printStats(a.out, update.Stats, time.Now())
		fmt.Fprintln(a.out)
	}
	return nil
}
