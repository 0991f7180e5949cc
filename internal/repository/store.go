// Package repository defines the assessor storage interface and implementations.
package repository

import (
	"context"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// Store defines the interface for assessor persistence. Getters return
// (nil, nil) when the record does not exist.
type Store interface {
	// Interview operations
	CreateInterview(ctx context.Context, interview *domain.Interview) error
	GetInterview(ctx context.Context, interviewID string) (*domain.Interview, error)
	CompleteInterview(ctx context.Context, interviewID string) error

	// Message operations
	CreateMessage(ctx context.Context, message *domain.InterviewMessage) error
	GetMessages(ctx context.Context, interviewID string) ([]domain.InterviewMessage, error)

	// Report operations
	SaveReport(ctx context.Context, interviewID string, report *domain.ReportPayload) error
	GetReport(ctx context.Context, interviewID string) (*domain.ReportPayload, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
