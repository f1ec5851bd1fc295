package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// nodeIDRegex matches valid diagram node identifiers: a letter or
// underscore followed by letters, digits, underscores or hyphens.
var nodeIDRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// ValidateNodeID validates a node identifier from an external source
// (HTTP request or programmatic graph construction). The DSL parser
// enforces the same shape through its grammar.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node ID too long (max 256 characters)")
	}

	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidGraph, "invalid node ID: %q", id)
	}

	return nil
}

// ValidateLabel validates a node or edge label: control characters
// other than newlines are rejected because they would corrupt the
// character grid.
func ValidateLabel(label string) error {
	for _, r := range label {
		if r == '\n' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "label contains control characters")
		}
	}
	return nil
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateFormat validates an output format name.
func ValidateFormat(format string) error {
	switch format {
	case "text", "dot", "svg", "json":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unknown output format %q (must be text, dot, svg or json)", format)
}
