// Package raster holds the decoded pixel grid used by the transcoder and the
// pure operations applied to it: target size computation, Lanczos resizing,
// background compositing and transparency detection.
//
// Operations never mutate their input; each returns a new Raster.
package raster
