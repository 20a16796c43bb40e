// Command doublefield inspects, configures, renders and serves double field
// displays.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
