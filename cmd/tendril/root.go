package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/internal/demo"
	"github.com/aretw0/tendril/internal/logging"
	"github.com/aretw0/tendril/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tendril",
	Short: "Tendril is an animatable value graph",
	Long:  `Tendril builds graphs of time-varying values and inspects them: sampling, descriptions and diagrams.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
}

// loadScene builds the named demo scene with the settings from the command flags.
func loadScene(cmd *cobra.Command, name string) (*demo.Result, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel()
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		if level, err = config.ParseLevel(override); err != nil {
			return nil, err
		}
	}
	logger := logging.NewWithFormat(os.Stderr, level, cfg.Log.Format)

	scene, err := demo.Get(name)
	if err != nil {
		return nil, err
	}
	logger.Debug("building scene", slog.String("scene", name))
	return scene.Build(tendril.WithConfig(cfg), tendril.WithLogger(logger))
}
