// Package template defines the renderer-agnostic template seam used by the
// HTML renderer. The gotemplate subpackage provides a pongo2 backed engine.
package template
