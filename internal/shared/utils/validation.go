package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB - largest icon file accepted
	MaxSrcLength  = 8 * 1024 * 1024  // data URIs make icon src large
	MaxIDLength   = 128
)

// Regular expressions for validation
var (
	// SiteURLPattern accepts http(s) followed by any run of non-space, non-quote characters
	SiteURLPattern = regexp.MustCompile(`^(http|https)://[^ "]+$`)
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// IsValidURL reports whether candidate is an acceptable site URL
func IsValidURL(candidate string) bool {
	return SiteURLPattern.MatchString(candidate)
}

// EnsureScheme prefixes https:// onto a non-empty url that does not start with http.
// Empty input is returned unchanged.
func EnsureScheme(url string) string {
	if url != "" && !strings.HasPrefix(url, "http") {
		return "https://" + url
	}
	return url
}

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates a backend-assigned identifier before it goes into a path
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateIconSrc validates an icon src submitted by a client
func ValidateIconSrc(src string) error {
	return ValidateString(src, "src", 1, MaxSrcLength, true)
}
