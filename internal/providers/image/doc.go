// Package image measures icons and turns uploaded files into data URIs.
//
// Supported formats: PNG, JPEG, GIF, WebP, BMP and SVG. Raster sizes come
// from the format header, SVG sizes from the width/height attributes or the
// viewBox. Sources are remote URLs (downloaded through the HTTP client) or
// data URIs.
//
// Headless mode skips loading entirely and measures every image as 0x0,
// which keeps the workflow usable where remote hosts are unreachable.
//
// Example Usage:
//
//	inspector := image.NewInspector(image.Config{Timeout: 15 * time.Second}, httpClient, logger)
//	dims, err := inspector.MeasureImage(ctx, "https://example.com/icon.png")
package image
