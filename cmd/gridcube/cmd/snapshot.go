// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gviegas/gridcube/internal/headless"
)

var (
	snapshotOut     string
	snapshotOpt     = headless.DefaultOptions()
	snapshotTimeout time.Duration
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the cube to a PNG file",
	Long: `Render the cube without a window and write the last presented frame
as PNG. The region's height follows the same rule as in a window: the
larger of 400 pixels and 45% of the viewport height.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapshotOut, "out", "o", "gridcube.png", "Output file")
	f.IntVar(&snapshotOpt.Width, "width", snapshotOpt.Width, "Region width in pixels")
	f.IntVar(&snapshotOpt.ViewportHeight, "viewport-height", snapshotOpt.ViewportHeight, "Viewport height in pixels")
	f.IntVar(&snapshotOpt.Frames, "frames", snapshotOpt.Frames, "Frames to run before the snapshot")
	f.Float32Var(&snapshotOpt.Yaw, "yaw", 0, "Extra orbit azimuth in radians")
	f.Float32Var(&snapshotOpt.Pitch, "pitch", 0, "Extra orbit polar angle in radians")
	f.DurationVar(&snapshotTimeout, "timeout", 30*time.Second, "Give up after this long")
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), snapshotTimeout)
	defer cancel()
	img, err := headless.Snapshot(ctx, cfg, snapshotOpt)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	f, err := os.Create(snapshotOut)
	if err != nil {
		return err
	}
	if err := headless.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	b := img.Bounds()
	cfg.Logger.Info("snapshot written", "file", snapshotOut, "width", b.Dx(), "height", b.Dy())
	return nil
}
