// Package export renders spin fields and trajectories to files: HSV-coloured
// raster images (PNG, WebP), animated GIFs and SVG quiver plots.
package export
