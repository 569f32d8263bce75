package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default config.toml",
		Long: `Create a config.toml in the tps configuration directory populated with
the current defaults so it can be edited manually.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(configDir(), 0o750); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			target := configFilePath()

			if err := viper.SafeWriteConfigAs(target); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Println("wrote", target)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
