package doublefield

import (
	"io/fs"

	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// LoadDisplays reads display configuration from fsys. A nil registry uses
// NewFormatterRegistry.
func LoadDisplays(fsys fs.FS, registry *formatter.Registry) (*display.Store, error) {
	if registry == nil {
		registry = NewFormatterRegistry()
	}
	return display.LoadFS(fsys, registry)
}

// LoadDisplaysFromPath reads display configuration from a file or directory.
func LoadDisplaysFromPath(path string, registry *formatter.Registry) (*display.Store, error) {
	if registry == nil {
		registry = NewFormatterRegistry()
	}
	return display.LoadPath(path, registry)
}
