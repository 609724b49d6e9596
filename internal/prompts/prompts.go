// Package prompts holds the LLM prompt templates for document generation,
// embedded at compile time from generation.json.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed generation.json
var generationJSON []byte

var (
	loadOnce sync.Once
	table    map[string]string
	loadErr  error
)

// Get returns the prompt template stored under key.
func Get(key string) (string, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(generationJSON, &table); err != nil {
			loadErr = fmt.Errorf("failed to parse generation prompts: %w", err)
		}
	})
	if loadErr != nil {
		return "", loadErr
	}
	prompt, ok := table[key]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", key)
	}
	return prompt, nil
}

// Format substitutes {{.Key}} placeholders in a template. Placeholders with
// no value in vars are left in place.
func Format(template string, vars map[string]string) string {
	for key, value := range vars {
		template = strings.ReplaceAll(template, "{{."+key+"}}", value)
	}
	return template
}
