// Package filter implements the pixel kernels behind the decorations:
//   - Gaussian blur (separable, edge-extended)
//   - Alpha-silhouette shadow layers
//   - 4x5 color matrix transformations (grayscale, saturation, opacity)
//
// Every function takes a premultiplied *image.RGBA with a zero origin and
// returns a new image of the same size; inputs are never modified.
package filter
