// Package completion decides whether an AI message ends the interview.
package completion

import "strings"

// Detector inspects AI-authored text for the end of an interview.
type Detector interface {
	Concluded(text string) bool
}

// PhraseDetector matches sentinel phrases case-insensitively anywhere in the text.
// Ordinary content that happens to contain a phrase is a false positive.
type PhraseDetector struct {
	phrases []string
}

// NewPhraseDetector creates a detector for the given sentinel phrases. Blank
// phrases are ignored; a detector without phrases never fires.
func NewPhraseDetector(phrases ...string) *PhraseDetector {
	d := &PhraseDetector{}
	for _, p := range phrases {
		if p = strings.TrimSpace(p); p != "" {
			d.phrases = append(d.phrases, strings.ToLower(p))
		}
	}
	return d
}

// Concluded reports whether text contains any sentinel phrase.
func (d *PhraseDetector) Concluded(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range d.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Phrases returns the normalized sentinel phrases.
func (d *PhraseDetector) Phrases() []string {
	return append([]string(nil), d.phrases...)
}
