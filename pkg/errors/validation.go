package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength bounds state names read from tree files and goal strings.
const MaxNameLength = 256

// ValidateName validates a state or goal name read from user input.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of MaxNameLength characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGoal, "name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidGoal, "name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGoal, "name contains invalid control characters")
		}
	}

	return nil
}

// ValidateLimit checks a depth limit. Zero is allowed: a search bounded at
// depth zero only goal-tests the initial state.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return New(ErrCodeInvalidLimit, "depth limit must be >= 0, got %d", limit)
	}
	return nil
}

// ValidatePath validates a tree or graph file path supplied to the CLI or
// the HTTP server.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//
// Absolute paths are accepted; the CLI reads files the user names.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
