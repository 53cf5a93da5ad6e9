// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package cmd implements the gridcube commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gviegas/gridcube"
	"github.com/gviegas/gridcube/viewer"
)

var (
	configPath string
	gridN      int
	gridSize   float32
	driverName string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gridcube",
	Short: "Interactive n×n grid cube",
	Long: `gridcube renders a rotatable cube whose six faces carry an n×n
reference grid. It can run in a window, render a PNG snapshot without
a window, or export the cube geometry as glTF.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML configuration file")
	pf.IntVar(&gridN, "n", gridcube.DefaultN, "Grid subdivisions per face")
	pf.Float32Var(&gridSize, "size", gridcube.DefaultSize, "Cube edge length")
	pf.StringVar(&driverName, "driver", "", "Rendering driver (empty selects any)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")
	rootCmd.AddCommand(windowCmd, snapshotCmd, exportCmd)
}

// loadConfig builds the viewer configuration from the
// configuration file, if any, and the flags that were set.
func loadConfig(cmd *cobra.Command) (viewer.Config, error) {
	cfg := viewer.DefaultConfig()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if cfg, err = viewer.LoadConfig(f); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("n") || flags.Changed("size") {
		n, size := cfg.Grid.N(), cfg.Grid.Size()
		if flags.Changed("n") {
			n = gridN
		}
		if flags.Changed("size") {
			size = gridSize
		}
		grid, err := gridcube.NewGridSpec(n, size)
		if err != nil {
			return cfg, err
		}
		cfg.Grid = grid
	}
	if flags.Changed("driver") {
		cfg.Driver = driverName
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, nil
}
