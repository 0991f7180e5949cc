// Package assessment provides the HTTP client for the remote assessment service.
package assessment

import (
	"context"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// AssessmentClient defines the remote operations the session orchestrator needs.
// Every failure is reported as a *domain.TransportError.
type AssessmentClient interface {
	// CreateSession opens a new interview.
	CreateSession(ctx context.Context) (*domain.CreateSessionResponse, error)

	// SendTurn posts one user message and returns the AI reply.
	SendTurn(ctx context.Context, sessionID, text string) (*domain.ChatResponse, error)

	// FetchReport retrieves the performance report for an interview.
	FetchReport(ctx context.Context, sessionID string) (*domain.ReportPayload, error)
}

// Ensure Client implements AssessmentClient interface.
var _ AssessmentClient = (*Client)(nil)
