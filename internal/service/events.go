package service

import (
	"context"
	"time"

	"github.com/xiaot623/gogo/interviewer/internal/observability"
)

const eventSource = "session"

// Session lifecycle events.
const (
	EventInitializeStart    observability.EventType = "session.initialize.start"
	EventInitializeComplete observability.EventType = "session.initialize.complete"
	EventInitializeFailed   observability.EventType = "session.initialize.failed"
	EventTurnStart          observability.EventType = "session.turn.start"
	EventTurnComplete       observability.EventType = "session.turn.complete"
	EventTurnFailed         observability.EventType = "session.turn.failed"
	EventConcluded          observability.EventType = "session.concluded"
	EventReportStart        observability.EventType = "session.report.start"
	EventReportComplete     observability.EventType = "session.report.complete"
	EventReportFailed       observability.EventType = "session.report.failed"
	EventReportCached       observability.EventType = "session.report.cached"
	EventRejected           observability.EventType = "session.rejected"
)

func (s *Session) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if id := s.ID(); id != "" {
		data["session_id"] = id
	}
	s.svc.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    eventSource,
		Data:      data,
	})
}
