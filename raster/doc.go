// Package raster draws emitted path elements into an RGBA image for quick
// previews. It is not a PDF renderer: text, clipping, dash patterns, caps
// and joins are not drawn.
package raster
