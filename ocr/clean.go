package ocr

import "strings"

// CleanLines post-processes raw OCR output. The engine emits stray
// whitespace-only lines around recognized blocks; this splits the text
// into lines, trims each one, drops lines that become empty, and rejoins
// the survivors with newlines. Surviving content is not altered.
func CleanLines(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
