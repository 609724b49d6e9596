package pdf

import (
	"regexp"
	"strings"
)

// LineClass is the rendering class assigned to one markdown line.
type LineClass int

// Line classes, in the fixed precedence they are checked.
const (
	ClassSkip LineClass = iota
	ClassH1
	ClassH2
	ClassH3
	ClassBullet
	ClassNumbered
	ClassPseudoHeading
	ClassParagraph
)

var (
	numberedRe    = regexp.MustCompile(`^(\d+)[.)]\s*(.*)$`)
	bareHeaderRe  = regexp.MustCompile(`^#+\s*$`)
	leadHeaderRe  = regexp.MustCompile(`^#+\s*`)
	linkRe        = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
	inlineCodeRe  = regexp.MustCompile("`(.+?)`")
	artifactLines = map[string]bool{"```": true, "```markdown": true, "---": true, "***": true, "===": true}
)

// Classified is a line plus its rendering class and marker-free text.
type Classified struct {
	Class LineClass
	Text  string
	// Num is the list index for numbered items.
	Num string
}

// ClassifyLine assigns a rendering class to a trimmed markdown line. Checks
// run in fixed precedence: heading markers, bullets, numbered items, the
// all-caps heuristic, then paragraph.
func ClassifyLine(line string) Classified {
	line = strings.TrimSpace(line)

	if line == "" || artifactLines[line] {
		return Classified{Class: ClassSkip}
	}

	switch {
	case strings.HasPrefix(line, "### "):
		return Classified{Class: ClassH3, Text: stripHeader(line[4:])}
	case strings.HasPrefix(line, "## "):
		return Classified{Class: ClassH2, Text: stripHeader(line[3:])}
	case strings.HasPrefix(line, "# "):
		return Classified{Class: ClassH1, Text: stripHeader(line[2:])}
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return Classified{Class: ClassBullet, Text: strings.TrimSpace(line[2:])}
	}

	if m := numberedRe.FindStringSubmatch(line); m != nil {
		return Classified{Class: ClassNumbered, Num: m[1], Text: m[2]}
	}

	// A line that is only header markers carries no content.
	if bareHeaderRe.MatchString(line) {
		return Classified{Class: ClassSkip}
	}

	if isPseudoHeading(line) {
		return Classified{Class: ClassPseudoHeading, Text: line}
	}

	return Classified{Class: ClassParagraph, Text: stripLeadingHeader(line)}
}

// isPseudoHeading reports whether an unmarked line should render as a section
// heading: all caps, short, and few words (e.g. "SKILLS").
func isPseudoHeading(line string) bool {
	if len(line) >= 50 || len(strings.Fields(line)) > 5 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func stripHeader(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "#"))
}

// stripLeadingHeader removes stray header markers from a paragraph line while
// keeping bold markers intact.
func stripLeadingHeader(line string) string {
	return strings.TrimSpace(leadHeaderRe.ReplaceAllString(line, ""))
}

// stripInlineMarkup unwraps links and inline code spans.
func stripInlineMarkup(text string) string {
	text = linkRe.ReplaceAllString(text, "$1")
	return inlineCodeRe.ReplaceAllString(text, "$1")
}
