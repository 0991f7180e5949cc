// Package llm provides the interviewer model used by the assessor.
package llm

import "context"

// Role identifies the author of a history turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one entry of the conversation history passed to the interviewer.
type Turn struct {
	Role Role
	Text string
}

// Interviewer generates interview replies and the closing report.
type Interviewer interface {
	// Respond returns the next interviewer message for the history. After the
	// opening message, replies start with an "Evaluation: " line followed by a
	// blank line.
	Respond(ctx context.Context, history []Turn) (string, error)

	// Summarize returns a Markdown performance summary for the history.
	Summarize(ctx context.Context, history []Turn) (string, error)
}

// Ensure ScriptedInterviewer implements Interviewer interface.
var _ Interviewer = (*ScriptedInterviewer)(nil)
