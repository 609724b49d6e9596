package importers

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

// ParsedResume is the outcome of parsing an uploaded résumé file.
type ParsedResume struct {
	Text  string
	Name  string
	Email string
	Phone string
}

// ParseResumeFile parses an uploaded résumé. Only plain-text formats are
// supported; anything else gets a descriptive error and nothing is written.
func ParseResumeFile(filename string, data []byte) (*ParsedResume, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md":
	case "":
		return nil, fmt.Errorf("file has no extension; upload a .txt or .md résumé")
	default:
		return nil, fmt.Errorf("unsupported file type %s; upload a .txt or .md résumé", ext)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("résumé file is empty")
	}

	parsed := &ParsedResume{
		Text:  text,
		Email: emailRe.FindString(text),
		Phone: strings.TrimSpace(phoneRe.FindString(text)),
		Name:  guessName(text),
	}
	return parsed, nil
}

// guessName takes the first short line that looks like a person's name: a
// few capitalized words with no digits or contact markers.
func guessName(text string) string {
	lines := strings.Split(text, "\n")
	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line == "" || len(line) > 60 {
			continue
		}
		if strings.ContainsAny(line, "@0123456789:/") {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		plausible := true
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			if !unicode.IsUpper(r) {
				plausible = false
				break
			}
		}
		if plausible {
			return line
		}
	}
	return ""
}
