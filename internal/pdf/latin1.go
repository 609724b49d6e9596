package pdf

import "strings"

// latin1Replacements maps common unicode punctuation to ASCII approximations.
// The underlying renderer only supports a single-byte encoding, so anything
// outside latin-1 must be substituted before layout.
var latin1Replacements = map[rune]string{
	// Quotes
	'’': "'", '‘': "'", '‛': "'",
	'“': `"`, '”': `"`, '„': `"`, '‟': `"`,
	'´': "'",
	// Dashes
	'–': "-", '—': "-", '―': "-",
	'−': "-", '‐': "-", '‑': "-",
	// Bullets and symbols
	'•': "-", '‣': "-", '⁃': "-",
	'·': "-", '●': "-", '○': "-",
	'▪': "-", '▫': "-", '■': "-", '□': "-",
	'∙': "-",
	'°': " degrees ",
	'': "-", '': "-",
	// Spaces
	' ': " ", ' ': " ", ' ': " ", ' ': " ",
	// Other
	'…': "...",
	'®': "(R)", '©': "(C)", '™': "(TM)",
}

// cleanSpecialChars substitutes known unicode characters with ASCII
// approximations and replaces anything still outside latin-1 with a dash.
func cleanSpecialChars(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := latin1Replacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r <= 0xFF {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}
