package errors

import (
	"strings"
	"unicode"
)

// ValidateDependencyName validates a dependency name for safety and
// correctness before it is written into a manifest.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No whitespace
//   - Maximum length of 256 characters
//
// Ecosystem-specific naming rules (PyPI normalization etc.) are out of scope;
// the merge engine treats names verbatim.
func ValidateDependencyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDependency, "dependency name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDependency, "dependency name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDependency, "dependency name contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidDependency, "dependency name cannot contain whitespace")
		}
	}

	return nil
}

// ValidateManifestPath validates a manifest file path supplied on the
// command line. It rejects empty paths and embedded null bytes; existence
// checks are left to the caller so missing files report FILE_NOT_FOUND with
// the OS error attached.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "manifest path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "manifest path contains a null byte")
	}

	return nil
}
