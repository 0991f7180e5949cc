package llm

import (
	"fmt"
	"strings"
)

const (
	// ModeScripted selects the built-in scripted interviewer.
	ModeScripted = "scripted"
)

// NewInterviewer creates an interviewer for the given mode.
func NewInterviewer(mode string, questionCount int) (Interviewer, error) {
	switch strings.ToLower(mode) {
	case "", ModeScripted:
		return NewScriptedInterviewer(questionCount), nil
	default:
		return nil, fmt.Errorf("unknown interviewer mode %q", mode)
	}
}
