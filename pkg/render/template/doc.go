// Package template defines the seam between HTML fragment producers and the
// template engine that renders them.
package template
