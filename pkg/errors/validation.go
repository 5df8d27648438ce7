package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds object and material names used as file names.
const maxNameLength = 255

// ValidateFileStem checks that a scene-provided name is safe to use as the
// stem of an exported file (meshes/<stem>.obj, textures/<stem>.png).
//
// Host applications allow almost anything in object names, so the rules
// only reject what would escape the output directory or break the
// filesystem:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators
//   - No ".." sequences
func ValidateFileStem(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "file name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators: %q", name)
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "file name cannot contain path traversal sequences: %q", name)
	}
	return nil
}

// ValidateRelativePath validates a path that will be written into the scene
// document relative to its directory.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (renderers on other platforms will not resolve them)
func ValidateRelativePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}
