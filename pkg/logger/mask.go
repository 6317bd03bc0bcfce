package logger

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Query parameters whose values never reach a log line.
var sensitiveParams = []string{"key", "api_key", "apikey", "token", "secret"}

var keyPattern = regexp.MustCompile(`(?i)\b(key|api_key|apikey|token|secret)=([^&\s]+)`)

// MaskURL replaces sensitive query values with a short fingerprint so that
// two log lines using the same key can still be correlated.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return MaskMessage(rawURL)
	}

	parts := strings.Split(parsed.RawQuery, "&")
	for i, part := range parts {
		name, value, found := strings.Cut(part, "=")
		if !found || !isSensitive(name) {
			continue
		}
		parts[i] = name + "=" + fingerprint(value)
	}
	parsed.RawQuery = strings.Join(parts, "&")
	return parsed.String()
}

// MaskMessage masks key=value pairs anywhere in free text.
func MaskMessage(message string) string {
	return keyPattern.ReplaceAllStringFunc(message, func(match string) string {
		name, value, _ := strings.Cut(match, "=")
		return name + "=" + fingerprint(value)
	})
}

// MaskSecret fingerprints a bare secret value.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return fingerprint(secret)
}

func isSensitive(name string) bool {
	name = strings.ToLower(name)
	for _, p := range sensitiveParams {
		if name == p {
			return true
		}
	}
	return false
}

func fingerprint(value string) string {
	sum := sha256.Sum256([]byte(value))
	return fmt.Sprintf("***%x", sum[:4])
}
