// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gviegas/gridcube"
	"github.com/gviegas/gridcube/gltf"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cube as glTF",
	Long: `Export the cube geometry as glTF 2.0.

The format follows the output file's extension: ".glb" writes a binary
blob, anything else writes JSON with an embedded buffer.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "gridcube.gltf", "Output file")
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	glb := strings.EqualFold(filepath.Ext(exportOut), ".glb")
	if err := gltf.Write(f, gridcube.Build(cfg.Grid).Node(), glb); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	cfg.Logger.Info("exported", "file", exportOut, "grid", cfg.Grid.String(), "glb", glb)
	return nil
}
