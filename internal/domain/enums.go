// Package domain defines the core domain models for the interviewer.
package domain

// SessionStatus represents the lifecycle stage of an interview session.
type SessionStatus string

const (
	SessionStatusInitializing SessionStatus = "INITIALIZING"
	SessionStatusActive       SessionStatus = "ACTIVE"
	SessionStatusConcluded    SessionStatus = "CONCLUDED"
	SessionStatusReportReady  SessionStatus = "REPORT_READY"
)

var sessionStatusRank = map[SessionStatus]int{
	SessionStatusInitializing: 0,
	SessionStatusActive:       1,
	SessionStatusConcluded:    2,
	SessionStatusReportReady:  3,
}

// Precedes reports whether s comes strictly before other in the lifecycle.
func (s SessionStatus) Precedes(other SessionStatus) bool {
	return sessionStatusRank[s] < sessionStatusRank[other]
}

// Sender identifies who authored a message.
type Sender string

const (
	SenderAI   Sender = "AI"
	SenderUser Sender = "USER"
)

// FailureKind classifies a failed remote call from the orchestrator's point of view.
type FailureKind string

const (
	FailureKindInitialization FailureKind = "INITIALIZATION_FAILURE"
	FailureKindMessageSend    FailureKind = "MESSAGE_SEND_FAILURE"
	FailureKindReport         FailureKind = "REPORT_FAILURE"
)

// Operation names a remote call made against the Assessment Service.
type Operation string

const (
	OperationCreateSession Operation = "create_session"
	OperationSendTurn      Operation = "send_turn"
	OperationFetchReport   Operation = "fetch_report"
)

// FailureKind maps the operation onto the orchestrator's error taxonomy.
func (o Operation) FailureKind() FailureKind {
	switch o {
	case OperationCreateSession:
		return FailureKindInitialization
	case OperationSendTurn:
		return FailureKindMessageSend
	default:
		return FailureKindReport
	}
}

// TransportErrorKind classifies why a transport call failed.
type TransportErrorKind string

const (
	TransportErrorNetwork TransportErrorKind = "network"
	TransportErrorStatus  TransportErrorKind = "status"
	TransportErrorDecode  TransportErrorKind = "decode"
)

// InterviewStatus is the server-side status of an interview in the assessment service.
type InterviewStatus string

const (
	InterviewStatusActive    InterviewStatus = "ACTIVE"
	InterviewStatusCompleted InterviewStatus = "COMPLETED"
)
