package commands

import (
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/config"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the lockfile whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), options(s), app.WatchOptions{
				Debounce: s.Debounce,
				Interval: s.StatusInterval,
			})
		},
	}
	cmd.Flags().Duration("debounce", config.DefaultDebounce, "Quiet period after a change before reloading")
	cmd.Flags().Duration("interval", config.DefaultStatusInterval, "How often to print the status line (0 to disable)")
	return cmd
}
