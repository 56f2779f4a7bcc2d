package rexos

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/PradipLalpura/RexOS/internal/app"
	"github.com/PradipLalpura/RexOS/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage RexOS local configuration",
}

var configForce bool

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		db, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		cfg.DBPath = db
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config yaml: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, b)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}
		if err := config.Write(path, config.Default(), configForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}
