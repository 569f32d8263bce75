// Package cmd provides the root command and CLI setup for tps.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tps.dev/pkg/tps/internal/adapter"
	"tps.dev/pkg/tps/internal/controller"
	"tps.dev/pkg/tps/internal/domain"
	m "tps.dev/pkg/tps/internal/model"
)

var resolver *domain.Resolver
var mux adapter.Multiplexer
var ui controller.UI

// verboseFlag flips the log level to Debug when set.
var verboseFlag bool

// sortFlag overrides the configured sort mode for one invocation.
var sortFlag string

// skipCurrentFlag drops the current working directory from the list.
var skipCurrentFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	resolver = domain.NewResolver(adapter.NewLocalProjectFS(), adapter.NewGitDirClassifier())
	mux = adapter.NewTmuxAdapter(adapter.NewRealExecutor())
	ui = controller.NewTUIPicker()
}

const rootLongDescription = `tps scans your configured project home directories for working
directories — expanding bare git repositories into their linked
worktrees — and switches your tmux client to the selected project's
session, creating it first if needed.

Projects can be ranked alphabetically or by how recently you switched
to them (sort_mode = "recent" in the config file).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "tps",
		Short:        "tmux project switcher",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configLoadErr != nil {
				return configLoadErr
			}

			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))

			opts, err := switchOptions()
			if err != nil {
				return err
			}

			switcher := domain.NewSwitcher(resolver, mux, ui)

			err = switcher.Switch(cmd.Context(), opts)
			if errors.Is(err, domain.ErrNoProjects) {
				cmd.Printf("No projects found. Configure project_homes in %s (see `tps init`).\n", configFilePath())

				return nil
			}

			return err
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(
		&sortFlag, sortFlagName, "s",
		viper.GetString(sortModeKey),
		"project order: alphabetical or recent",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(sortFlagName), sortModeKey)

	cmd.PersistentFlags().BoolVar(
		&skipCurrentFlag, skipCurrentFlagName,
		viper.GetBool(skipCurrentKey),
		"hide the current working directory from the list",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(skipCurrentFlagName), skipCurrentKey)

	cmd.PersistentFlags().BoolVarP(
		&verboseFlag, verboseFlagName, "v",
		viper.GetBool(logVerboseKey),
		"log at debug level",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// switchOptions assembles one invocation's options from the effective
// configuration, normalizing every configured path.
func switchOptions() (domain.SwitchOptions, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return domain.SwitchOptions{}, fmt.Errorf("cannot resolve home directory: %w", err)
	}

	homes, err := domain.NormalizeAll(viper.GetStringSlice(homesKey), home)
	if err != nil {
		return domain.SwitchOptions{}, fmt.Errorf("invalid project_homes entry: %w", err)
	}

	extra, err := domain.NormalizeAll(viper.GetStringSlice(projectsKey), home)
	if err != nil {
		return domain.SwitchOptions{}, fmt.Errorf("invalid projects entry: %w", err)
	}

	mode, err := m.ParseSortMode(viper.GetString(sortModeKey))
	if err != nil {
		// Misspelled sort modes fall back to alphabetical, as documented.
		slog.Warn("falling back to alphabetical order", "error", err)
	}

	capacity := viper.GetInt(cacheCapacityKey)
	if capacity < 1 {
		return domain.SwitchOptions{}, fmt.Errorf("cache.capacity must be positive, got %d", capacity)
	}

	storePath := viper.GetString(cachePathKey)
	if storePath == "" {
		storePath = defaultCachePath()
	}

	wd, err := os.Getwd()
	if err != nil {
		return domain.SwitchOptions{}, err
	}

	return domain.SwitchOptions{
		Homes:       homes,
		Extra:       extra,
		SkipCurrent: viper.GetBool(skipCurrentKey),
		WorkingDir:  m.Path(wd),
		Mode:        mode,
		Store:       adapter.NewFileCacheStore(storePath),
		Capacity:    capacity,
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
