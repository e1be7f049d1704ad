// Package validation provides input validation and sanitization utilities.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/patseek/patseek/internal/constants"
)

// ValidateQuery sanitizes one raw query line. Control characters are
// stripped and runs of whitespace collapse to single spaces.
func ValidateQuery(query string) (string, error) {
	if len(query) > constants.MaxQueryLength {
		return "", fmt.Errorf("query too long (max %d characters)", constants.MaxQueryLength)
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, query)

	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return cleaned, nil
}

// ValidateLimit validates a result limit flag.
func ValidateLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("limit cannot be negative")
	}
	if limit == 0 {
		return constants.DefaultTopK, nil
	}
	if limit > 100 {
		return 100, fmt.Errorf("limit too large (max 100)")
	}
	return limit, nil
}
