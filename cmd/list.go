package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"tps.dev/pkg/tps/internal/controller"
	"tps.dev/pkg/tps/internal/domain"
	m "tps.dev/pkg/tps/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered projects without switching",
		Long: `Print every project tps would offer for selection, alongside its
tmux session (when one is running) and its last recorded access time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configLoadErr != nil {
				return configLoadErr
			}

			configureLogger("", verboseFlag)

			opts, err := switchOptions()
			if err != nil {
				return err
			}

			discovered, err := resolver.Discover(opts.Homes)
			if err != nil {
				return err
			}

			// A dead tmux server should not hide the project list.
			sessions, err := mux.Sessions(cmd.Context())
			if err != nil {
				slog.Warn("could not list tmux sessions", "error", err)
			}

			cache, err := domain.LoadAccessCache(opts.Store, opts.Capacity)
			if err != nil {
				slog.Warn("recency history unavailable", "error", err)
				cache = domain.NewEphemeralCache(opts.Capacity)
			}
			defer cache.Close()

			paths := domain.MergePaths(discovered, opts.Extra)

			projects := make([]m.Project, 0, len(paths))
			for _, path := range paths {
				projects = append(projects, m.NewProject(path, sessions))
			}

			domain.Rank(projects, opts.Mode, cache)

			controller.RenderProjects(cmd.OutOrStdout(), projects, cache.AccessTimeOf)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
