package errors

import (
	"strings"
	"unicode"
)

// ValidatePersonID validates a person identifier for safety and correctness.
// Identifiers end up in layout node ids, cache keys, and API paths, so the
// rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators
//   - Maximum length of 256 characters
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTree, "person id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidTree, "person id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTree, "person id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\\x00") {
		return New(ErrCodeInvalidTree, "person id contains invalid characters")
	}

	return nil
}

// ValidateTreeID validates a stored tree identifier.
// Tree ids are UUIDs or user-supplied slugs; the same conservative rules
// apply as for person ids.
func ValidateTreeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "tree id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "tree id too long (max 128 characters)")
	}
	if strings.ContainsAny(id, "/\\\x00 ") {
		return New(ErrCodeInvalidInput, "tree id contains invalid characters")
	}
	return nil
}
