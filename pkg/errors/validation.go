package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Absolute and relative paths are both accepted; existence checks are the
// caller's job.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateAssemblyName validates an assembly short name before it is used to
// build a file name next to the primary assembly. Names that could escape the
// directory are rejected.
func ValidateAssemblyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "assembly name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "assembly name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "assembly name contains invalid control characters")
		}
	}

	if name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "assembly name cannot contain path components: %q", name)
	}

	return nil
}
