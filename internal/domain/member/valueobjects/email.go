package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lower-cases and validates an optional email. An empty
// input stays empty.
func NormalizeEmail(value string) (string, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	if normalized == "" {
		return "", nil
	}
	if len(normalized) > 100 {
		return "", fmt.Errorf("email cannot exceed 100 characters")
	}
	if !emailRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid email format: %s", value)
	}
	return normalized, nil
}
