// Package doublefield is the entry point for rendering double field values:
// two-part items (a first and a second subfield) displayed through a
// formatter such as the details formatter, which shows the first part as a
// collapsible summary and the second as its body.
//
// Most callers need RenderDetails or NewOrchestrator; the pkg/ subpackages
// expose the formatter contract, renderers and the display store directly.
package doublefield
