// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"context"

	"github.com/gviegas/gridcube/driver"
	_ "github.com/gviegas/gridcube/driver/soft"
)

// Load acquires rendering capabilities by opening any
// registered driver whose name contains name.
// If name is the empty string, all drivers are considered.
// It is meant to run off the rendering thread; if ctx is
// done before Load returns, the driver's GPU is not
// returned and ctx.Err() is reported instead.
// A driver opened before ctx was done is left open:
// drivers hand the same GPU to every caller, and closing
// it would invalidate the GPU of other sessions.
func Load(ctx context.Context, name string) (driver.GPU, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, gpu, err := openDriver(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return gpu, nil
}

var openDriver = driver.Open
