package store

import "strings"

// SanitizeFilename keeps alphanumerics, spaces, and "-_." and replaces
// everything else with an underscore, truncating to maxLen. Matches the
// naming used for both job files and application folders so the two stay
// keyed identically.
func SanitizeFilename(name string, maxLen int) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return strings.TrimSpace(out)
}
