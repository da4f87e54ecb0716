// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/dreamboard/dreamboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "dreamboard",
	Short: "Dreamboard is a crowdfunding board for dreams",
	Long: `Dreamboard is a crowdfunding board where wallet holders publish dreams
with a funding goal, track their progress and browse the dreams of others.`,
	Args: cobra.OnlyValidArgs,
}

var (
	configPath string // directory of main.toml
	cfg        config.Config
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// readConfig loads the configuration into cfg.
func readConfig(_ *cobra.Command, _ []string) error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err
}
