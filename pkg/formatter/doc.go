// Package formatter defines the contract hosts use to turn stored double field
// values into render descriptors. A formatter exposes four operations:
// default settings, a typed settings form, a human readable settings summary
// and ViewElements, which maps every item to one render element keyed by its
// delta. Base carries the behaviour shared by every double field formatter
// (subfield hidden/prefix/suffix settings and the PrepareItems pre-pass);
// concrete formatters embed it and merge their own settings, form elements and
// summary lines on top.
package formatter
