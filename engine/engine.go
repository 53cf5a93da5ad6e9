// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package engine implements real-time rendering of
// scene graphs.
package engine

const (
	// The maximum number of lights per renderer.
	MaxLight = 8

	dflMaxLight    = 4
	dflMaxDrawable = 1 << 16
	dflLineScale   = 1
)

// Config is used to configure the engine.
type Config struct {
	// The maximum number of lights per renderer.
	// It must not exceed MaxLight.
	//
	// Default is 4.
	MaxLight int

	// The maximum number of triangles and line
	// segments drawn per frame.
	//
	// Default is 65536.
	MaxDrawable int

	// Scale applied to line widths, e.g., to account
	// for high-density displays.
	//
	// Default is 1.
	LineScale float32
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxLight:    dflMaxLight,
		MaxDrawable: dflMaxDrawable,
		LineScale:   dflLineScale,
	}
}

var cfg Config

// Configure replaces the engine's configuration
// with config.
// Invalid fields are replaced with their defaults.
// It affects renderers created afterwards.
func Configure(config *Config) {
	dfl := DefaultConfig()
	cfg = *config
	if cfg.MaxLight <= 0 || cfg.MaxLight > MaxLight {
		cfg.MaxLight = dfl.MaxLight
	}
	if cfg.MaxDrawable <= 0 {
		cfg.MaxDrawable = dfl.MaxDrawable
	}
	if cfg.LineScale <= 0 {
		cfg.LineScale = dfl.LineScale
	}
}

// CurrentConfig returns the engine's configuration.
func CurrentConfig() Config { return cfg }

func init() {
	config := DefaultConfig()
	Configure(&config)
}
