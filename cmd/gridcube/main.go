// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Command gridcube displays, renders or exports a grid cube.
package main

import "github.com/gviegas/gridcube/cmd/gridcube/cmd"

func main() {
	cmd.Execute()
}
