// Package template defines the template engine seam the field renderer
// relies on. The gotemplate sub-package provides the pongo2 implementation.
package template
