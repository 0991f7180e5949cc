package ws

import (
	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// Frame types from client to gateway
const (
	TypeStart         = "start"
	TypeUserMessage   = "user_message"
	TypeRequestReport = "request_report"
)

// Frame types from gateway to client
const (
	TypeMessage = "message"
	TypeStatus  = "status"
	TypeReport  = "report"
	TypeError   = "error"
)

// Error codes
const (
	ErrorCodeInvalidMessage     = "invalid_message"
	ErrorCodeBusy               = "busy"
	ErrorCodeNoSession          = "no_session"
	ErrorCodeNotActive          = "not_active"
	ErrorCodeEmptyMessage       = "empty_message"
	ErrorCodeAlreadyInitialized = "already_initialized"
	ErrorCodeInternal           = "internal"
)

// BaseFrame contains common fields for all frames.
type BaseFrame struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	SessionID string `json:"session_id,omitempty"`
}

// UserMessageFrame is sent by the client to answer the interviewer.
type UserMessageFrame struct {
	BaseFrame
	Content string `json:"content"`
}

// MessageFrame carries one new transcript entry.
type MessageFrame struct {
	BaseFrame
	Message domain.Message `json:"message"`
}

// StatusFrame carries the session status after every operation.
type StatusFrame struct {
	BaseFrame
	Status  domain.SessionStatus `json:"status"`
	Pending bool                 `json:"pending"`
	Usable  bool                 `json:"usable"`
}

// ReportFrame carries the stored report.
type ReportFrame struct {
	BaseFrame
	Report domain.Report `json:"report"`
}

// ErrorFrame reports a rejected command.
type ErrorFrame struct {
	BaseFrame
	Code    string `json:"code"`
	Message string `json:"message"`
}
