// Package utils provides filename sanitization and ID generation.
//
// Functions:
//   - SanitizeFilename: Returns a safe filename for storage.
//   - FilenameFromURL: Derives a safe local filename from a document URL.
//   - GenerateUUID: Returns a new UUID string.
package utils

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const maxFilenameLen = 100

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func SanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	safe := unsafeChars.ReplaceAllString(base, "_")
	safe = strings.TrimLeft(safe, ".")
	if len(safe) > maxFilenameLen {
		safe = safe[:maxFilenameLen]
	}
	return safe
}

// FilenameFromURL returns the sanitized last path segment of rawURL with a
// .pdf extension, or fallback when the URL has no usable name.
func FilenameFromURL(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	name := SanitizeFilename(u.Path)
	if name == "" || name == "_" {
		return fallback
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

func GenerateUUID() string {
	return uuid.New().String()
}
