// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package driver defines the interfaces that rendering
// backends implement.
// Backends register themselves from init and are selected
// by name at run time.
package driver

import (
	"errors"
	"log"
	"strings"
	"sync"
)

// Driver is the interface that provides methods for
// loading and unloading an underlying implementation.
type Driver interface {
	// Open initializes the driver.
	// If it succeeds, further calls with the same receiver
	// have no effect and must return the same GPU instance.
	// Callers should assume that Open is not safe for
	// parallel execution.
	Open() (GPU, error)

	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// Close deinitializes the driver.
	// Closing a driver that is not open has no effect.
	Close()
}

// ErrNoDriver means that no registered driver matched
// the requested name.
var ErrNoDriver = errors.New("driver: driver not found")

// ErrNoDevice means that no suitable device could be
// found.
var ErrNoDevice = errors.New("driver: no suitable device found")

// ErrNoHostMemory means that host memory could not be
// allocated.
var ErrNoHostMemory = errors.New("driver: out of host memory")

// ErrTargetSize means that a target was requested with
// a non-positive or excessive size.
var ErrTargetSize = errors.New("driver: invalid target size")

// Drivers returns the registered Drivers.
// Client code imports specific driver packages, and then
// call this function from init. As such, drivers that do
// not register themselves on init will not be considered
// for selection.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// Driver implementations are expected to call Register
// exactly once, from an init function.
// If a driver with the same name has already been
// registered, it will be replaced by drv.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			log.Printf("[!] driver '%s' replaced", drv.Name())
			return
		}
	}
	drivers = append(drivers, drv)
	log.Printf("driver '%s' registered", drv.Name())
}

// Open opens the first registered driver whose name
// contains name. It is case-sensitive.
// If name is the empty string, all drivers are considered.
// It returns the error of the last failed attempt, or
// ErrNoDriver if no driver matched.
// Calls to Driver.Open are serialized, so Open can be
// called from multiple goroutines.
func Open(name string) (Driver, GPU, error) {
	mu.Lock()
	defer mu.Unlock()
	err := ErrNoDriver
	for _, d := range drivers {
		if !strings.Contains(d.Name(), name) {
			continue
		}
		var gpu GPU
		if gpu, err = d.Open(); err != nil {
			continue
		}
		return d, gpu, nil
	}
	return nil, nil, err
}

// Variables used for driver registration.
var (
	mu      sync.Mutex
	drivers = make([]Driver, 0, 1)
)
