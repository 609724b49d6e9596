package generate

import (
	"regexp"
	"strings"
)

// preamblePatterns match conversational lead-ins that models emit before the
// requested document despite the no-commentary instruction. Each pattern
// matches a whole leading line.
var preamblePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here('s| is) (a|an|the|your) .*(:|\.)\s*$`),
	regexp.MustCompile(`(?i)^i('ve| have) (drafted|created|written|prepared) .*(:|\.)\s*$`),
	regexp.MustCompile(`(?i)^below is .*(:|\.)\s*$`),
	regexp.MustCompile(`(?i)^sure[,!]? .*(:|\.)\s*$`),
	regexp.MustCompile(`(?i)^certainly[,!]? .*(:|\.)\s*$`),
	regexp.MustCompile(`(?i)^of course[,!]? .*(:|\.)\s*$`),
}

// emptyHeaderLine matches lines that are only markdown header markers.
var emptyHeaderLine = regexp.MustCompile(`^#+\s*$`)

// CleanResponse strips wrapping code fences, leading preamble sentences, and
// stray empty header lines from raw LLM output.
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)

	// Unwrap a whole-document code fence.
	if strings.HasPrefix(text, "```") {
		lines := strings.SplitN(text, "\n", 2)
		if len(lines) == 2 {
			text = lines[1]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	lines := strings.Split(text, "\n")

	// Drop preamble lines from the top only; once real content starts,
	// nothing further is removed as a preamble.
	start := 0
	for start < len(lines) {
		line := strings.TrimSpace(lines[start])
		if line == "" {
			start++
			continue
		}
		matched := false
		for _, pat := range preamblePatterns {
			if pat.MatchString(line) {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		start++
	}
	lines = lines[start:]

	// Collapse stray empty header lines anywhere in the body.
	out := lines[:0]
	for _, line := range lines {
		if emptyHeaderLine.MatchString(strings.TrimSpace(line)) {
			continue
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
