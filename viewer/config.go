// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package viewer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pelletier/go-toml/v2"

	"github.com/gviegas/gridcube"
	"github.com/gviegas/gridcube/driver"
	"github.com/gviegas/gridcube/linear"
)

// Config is used to configure a Session.
// Attach replaces invalid fields with their defaults.
type Config struct {
	// The cube to build.
	//
	// Default is gridcube.DefaultGridSpec().
	Grid gridcube.GridSpec

	// Initial camera position. The camera always
	// looks at the origin.
	//
	// Default is (4, 4, 6).
	CameraStart linear.V3

	// Vertical field of view in degrees.
	//
	// Default is 45.
	FOVDegrees float32

	// Clip plane distances.
	//
	// Defaults are 0.1 and 1000.
	Near float32
	Far  float32

	// Minimum and maximum camera distance.
	//
	// Default is [3, 20].
	ZoomRange [2]float32

	// Orbit damping factor, in (0, 1].
	//
	// Default is 0.08.
	Damping float32

	// Name of the driver to load. The empty string
	// selects any driver.
	Driver string

	// Clear color.
	Background linear.V3

	// Logger for session events.
	//
	// Default is slog.Default().
	Logger *slog.Logger

	// Acquire acquires rendering capabilities. It is
	// called once, from its own goroutine.
	//
	// Default calls engine.Load with Driver.
	Acquire func(ctx context.Context) (driver.GPU, error)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Grid:        gridcube.DefaultGridSpec(),
		CameraStart: linear.V3{4, 4, 6},
		FOVDegrees:  45,
		Near:        0.1,
		Far:         1000,
		ZoomRange:   [2]float32{3, 20},
		Damping:     0.08,
		Background:  linear.V3{0.06, 0.07, 0.09},
	}
}

// normalize replaces invalid fields of c with defaults.
func (c *Config) normalize() {
	dfl := DefaultConfig()
	if !c.Grid.Valid() {
		c.Grid = dfl.Grid
	}
	if c.CameraStart.Len() == 0 {
		c.CameraStart = dfl.CameraStart
	}
	if c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		c.FOVDegrees = dfl.FOVDegrees
	}
	if c.Near <= 0 || c.Far <= c.Near {
		c.Near, c.Far = dfl.Near, dfl.Far
	}
	if c.ZoomRange[0] < 0 || c.ZoomRange[1] <= c.ZoomRange[0] {
		c.ZoomRange = dfl.ZoomRange
	}
	if c.Damping <= 0 || c.Damping > 1 {
		c.Damping = dfl.Damping
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// file is the TOML layout read by LoadConfig.
type file struct {
	Driver     string     `toml:"driver"`
	Background [3]float32 `toml:"background"`
	Grid       struct {
		N    int     `toml:"n"`
		Size float32 `toml:"size"`
	} `toml:"grid"`
	Camera struct {
		Start [3]float32 `toml:"start"`
		FOV   float32    `toml:"fov"`
		Near  float32    `toml:"near"`
		Far   float32    `toml:"far"`
	} `toml:"camera"`
	Controls struct {
		Damping   float32    `toml:"damping"`
		ZoomRange [2]float32 `toml:"zoom_range"`
	} `toml:"controls"`
}

// LoadConfig decodes a TOML configuration from r.
// Keys that r does not set keep their default values.
// Unknown keys and invalid grids are errors.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	var f file
	f.Driver = c.Driver
	f.Background = c.Background
	f.Grid.N = c.Grid.N()
	f.Grid.Size = c.Grid.Size()
	f.Camera.Start = c.CameraStart
	f.Camera.FOV = c.FOVDegrees
	f.Camera.Near = c.Near
	f.Camera.Far = c.Far
	f.Controls.Damping = c.Damping
	f.Controls.ZoomRange = c.ZoomRange

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Config{}, fmt.Errorf("viewer: config: %w", err)
	}
	grid, err := gridcube.NewGridSpec(f.Grid.N, f.Grid.Size)
	if err != nil {
		return Config{}, fmt.Errorf("viewer: config: %w", err)
	}
	c.Grid = grid
	c.Driver = f.Driver
	c.Background = f.Background
	c.CameraStart = f.Camera.Start
	c.FOVDegrees = f.Camera.FOV
	c.Near = f.Camera.Near
	c.Far = f.Camera.Far
	c.Damping = f.Controls.Damping
	c.ZoomRange = f.Controls.ZoomRange
	return c, nil
}
