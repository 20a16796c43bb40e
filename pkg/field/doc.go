// Package field defines the stored shape of a double field: an ordered list of
// two-part items plus the per-display settings map the host persists for each
// field instance. Formatters only read these values; storage is owned by the
// host.
package field
