package errors

import (
	"net/url"
	"strings"
	"unicode"
)

const maxInputLength = 256

// ValidateNonEmpty validates that value is non-empty after trimming whitespace.
// The field name is used verbatim in the error message.
func ValidateNonEmpty(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}
	return nil
}

// ValidateSearchTerm validates a search term for the server search endpoint.
// An empty term is rejected so that a search never returns the whole registry.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only terms
//   - No control characters
//   - Maximum length of 256 characters
func ValidateSearchTerm(term string) error {
	return validateText(term, "search term")
}

// ValidateServerName validates a server name such as "io.github.owner/server".
// Names may contain slashes; they are only ever sent as query parameters.
func ValidateServerName(name string) error {
	return validateText(name, "server name")
}

// ValidateServerID validates a registry server id. Ids become a path segment of
// the request URL, so path separators and traversal sequences are rejected.
func ValidateServerID(id string) error {
	if err := validateText(id, "server id"); err != nil {
		return err
	}
	for _, pattern := range []string{"/", "\\", ".."} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "server id contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL is absolute and has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}
	return nil
}

func validateText(value, field string) error {
	if err := ValidateNonEmpty(value, field); err != nil {
		return err
	}
	if len(value) > maxInputLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, maxInputLength)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	return nil
}
