package core

import (
	"fmt"
	"strings"
)

const invalidFilenameChars = "<>:\"/\\|?*"

// SanitizeName replaces characters that are invalid in filenames with single
// spaces, collapsing runs. An empty result is an error rather than a silent
// empty path segment.
func SanitizeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is empty after sanitization")
	}

	var b strings.Builder
	b.Grow(len(name))

	lastSpace := false
	for _, r := range name {
		if r < 32 || r == 127 || strings.ContainsRune(invalidFilenameChars, r) {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
			continue
		}
		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
			b.WriteRune(' ')
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}

	result := strings.TrimSpace(b.String())
	if result == "" {
		return "", fmt.Errorf("name is empty after sanitization")
	}
	return result, nil
}
