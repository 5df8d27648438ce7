// Package texture copies image textures into the export directory.
//
// [Exporter] reads the image behind a texture node, either from disk or
// from bytes packed into the scene, decodes it, and re-encodes it as PNG
// or JPEG under textures/<stem>.<ext>. Sources may be PNG, JPEG, GIF, BMP,
// TIFF or WebP.
//
// When a [cache.Cache] is configured, the exporter records the hash of each
// written file keyed by source content and encode settings. A later export
// of the same source skips decoding and encoding as long as the output file
// is still present and unchanged.
//
// Exporter is safe for concurrent use. Nodes sharing one image are encoded
// once at a time.
package texture
