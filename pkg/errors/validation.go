package errors

import (
	"regexp"
	"unicode"
)

// handleRegex matches GitHub-style user handles: alphanumerics and single
// hyphens, not starting or ending with a hyphen. Bot accounts carry a
// "[bot]" suffix.
var handleRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9])*(\[bot\])?$`)

// maxHandleLength is GitHub's limit plus room for the bot suffix.
const maxHandleLength = 39 + len("[bot]")

// ValidateLabel validates a user handle used to address a vertex.
//
// Validation rules:
//   - Handle cannot be empty
//   - Maximum length of 44 characters
//   - Alphanumerics and single inner hyphens only, optional "[bot]" suffix
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "user handle cannot be empty")
	}
	if len(label) > maxHandleLength {
		return New(ErrCodeInvalidLabel, "user handle too long (max %d characters)", maxHandleLength)
	}
	if !handleRegex.MatchString(label) {
		return New(ErrCodeInvalidLabel, "invalid user handle: %q", label)
	}
	return nil
}

// ValidatePath validates a local file path given on the command line or in
// configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// MaxTopN bounds ranking sizes accepted from users.
const MaxTopN = 10000

// ValidateTopN validates the size of a requested ranking.
func ValidateTopN(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "top must be at least 1, got %d", n)
	}
	if n > MaxTopN {
		return New(ErrCodeInvalidInput, "top must be at most %d, got %d", MaxTopN, n)
	}
	return nil
}
