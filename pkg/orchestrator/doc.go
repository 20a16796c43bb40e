// Package orchestrator runs the formatter -> renderer pipeline for a double
// field instance: it resolves a formatter (by ID, field type or stored
// display), builds its view elements and hands them to a named renderer with
// theme configuration attached.
package orchestrator
