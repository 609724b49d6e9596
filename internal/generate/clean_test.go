package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponse_StripsPreamble(t *testing.T) {
	raw := "Here's a resume for you:\n\n# Jane Doe\nSenior Engineer"
	cleaned := CleanResponse(raw)
	assert.True(t, len(cleaned) > 0)
	assert.Equal(t, "# Jane Doe\nSenior Engineer", cleaned)
}

func TestCleanResponse_Preambles(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "here is", raw: "Here is a tailored resume:\n# Jane Doe"},
		{name: "ive drafted", raw: "I've drafted the cover letter below:\n# Jane Doe"},
		{name: "below is", raw: "Below is the resume you requested.\n# Jane Doe"},
		{name: "sure", raw: "Sure, here it is:\n# Jane Doe"},
		{name: "certainly", raw: "Certainly! Here is the document:\n# Jane Doe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned := CleanResponse(tt.raw)
			assert.Equal(t, "# Jane Doe", cleaned)
		})
	}
}

func TestCleanResponse_StripsCodeFence(t *testing.T) {
	raw := "```markdown\n# Jane Doe\n- Built X\n```"
	assert.Equal(t, "# Jane Doe\n- Built X", CleanResponse(raw))
}

func TestCleanResponse_RemovesEmptyHeaderLines(t *testing.T) {
	raw := "# Jane Doe\n##\nExperience text\n###  "
	assert.Equal(t, "# Jane Doe\nExperience text", CleanResponse(raw))
}

func TestCleanResponse_LeavesCleanContentAlone(t *testing.T) {
	raw := "# Jane Doe\n\n## Experience\n- Built X"
	assert.Equal(t, raw, CleanResponse(raw))
}

func TestCleanResponse_DoesNotDropBodySentences(t *testing.T) {
	// A sentence that resembles a preamble but sits below real content stays.
	raw := "# Jane Doe\nHere is a summary of my work:\n- Built X"
	cleaned := CleanResponse(raw)
	assert.Contains(t, cleaned, "Here is a summary of my work:")
}
