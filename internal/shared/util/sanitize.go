package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

var fileNameSeparators = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName normalizes a client-supplied file name for use as a
// storage key. Traversal sequences are rejected outright and path
// separators are flattened so the name cannot escape its prefix.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	s := fileNameSeparators.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", errInvalidFileName
	}
	return s, nil
}
