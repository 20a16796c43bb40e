// Package display stores which formatter each field display uses and the
// settings bound to it. Configuration is read from YAML or JSON files:
//
//	displays:
//	  - entity: node
//	    bundle: faq
//	    field: field_qa
//	    view_mode: default
//	    type: details
//	    settings:
//	      open: false
//
// Settings are validated against the schema derived from the formatter's
// defaults when a formatter registry is supplied.
package display
