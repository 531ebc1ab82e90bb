// Package template defines the template engine seam component renderers
// depend on. The pongo2 implementation lives in the gotemplate subpackage.
package template
