// Package template defines the engine-agnostic template contract used by the
// HTML renderer. The gotemplate subpackage provides a pongo2 implementation.
package template
