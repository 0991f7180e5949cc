package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/xiaot623/gogo/interviewer/internal/config"
	"github.com/xiaot623/gogo/interviewer/internal/domain"
	"github.com/xiaot623/gogo/interviewer/internal/observability"
	"github.com/xiaot623/gogo/interviewer/internal/report"
)

// Guard errors. A rejected call never changes session state.
var (
	ErrBusy               = errors.New("a request is already in flight")
	ErrNoSession          = errors.New("session has not been initialized")
	ErrNotActive          = errors.New("session is not accepting messages")
	ErrEmptyMessage       = errors.New("message is empty")
	ErrAlreadyInitialized = errors.New("session is already initialized")
)

// Session is one interview as seen by the user. All mutation goes through its
// methods; at most one remote call is outstanding at any time.
type Session struct {
	svc *Service

	mu          sync.RWMutex
	id          string
	status      domain.SessionStatus
	transcript  []domain.Message
	pending     bool
	report      *domain.Report
	lastFailure *domain.Failure
}

// Snapshot is a point-in-time copy of a session's observable state.
type Snapshot struct {
	ID         string               `json:"id,omitempty"`
	Status     domain.SessionStatus `json:"status"`
	Pending    bool                 `json:"pending"`
	Transcript []domain.Message     `json:"transcript"`
	Report     *domain.Report       `json:"report,omitempty"`
}

func newSession(svc *Service) *Session {
	return &Session{
		svc:        svc,
		status:     domain.SessionStatusInitializing,
		transcript: make([]domain.Message, 0),
	}
}

// Initialize opens the interview with the assessment service and appends the
// welcome message. On failure the recovery message is appended instead, the
// session keeps no id and Initialize may be called again.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.id != "" {
		s.mu.Unlock()
		return s.reject(ctx, "initialize", ErrAlreadyInitialized)
	}
	if s.pending {
		s.mu.Unlock()
		return s.reject(ctx, "initialize", ErrBusy)
	}
	s.pending = true
	s.mu.Unlock()
	defer s.release()

	s.emit(ctx, EventInitializeStart, observability.LevelVerbose, nil)
	start := time.Now()

	resp, err := s.svc.client.CreateSession(ctx)
	if err != nil {
		failure := s.svc.recovery.Recover(ctx, domain.OperationCreateSession, err)
		s.fail(failure)
		s.emit(ctx, EventInitializeFailed, observability.LevelError, map[string]any{
			"error":                   err.Error(),
			observability.DurationKey: time.Since(start).Milliseconds(),
		})
		return nil
	}

	s.mu.Lock()
	s.id = resp.ID
	s.advance(domain.SessionStatusActive)
	s.transcript = append(s.transcript, domain.NewAIMessage(s.welcome(resp)))
	s.mu.Unlock()

	s.emit(ctx, EventInitializeComplete, observability.LevelInfo, map[string]any{
		observability.DurationKey: time.Since(start).Milliseconds(),
	})
	return nil
}

// SendUserMessage appends the user's text, forwards it to the assessment
// service and appends the reply. The AI reply is checked for the end of the
// interview; failures become a recovery message in the transcript.
func (s *Session) SendUserMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	switch {
	case s.id == "":
		s.mu.Unlock()
		return s.reject(ctx, "send", ErrNoSession)
	case s.pending:
		s.mu.Unlock()
		return s.reject(ctx, "send", ErrBusy)
	case s.status != domain.SessionStatusActive:
		s.mu.Unlock()
		return s.reject(ctx, "send", ErrNotActive)
	case text == "":
		s.mu.Unlock()
		return s.reject(ctx, "send", ErrEmptyMessage)
	}
	s.pending = true
	id := s.id
	s.transcript = append(s.transcript, domain.NewUserMessage(text))
	s.mu.Unlock()
	defer s.release()

	s.emit(ctx, EventTurnStart, observability.LevelVerbose, nil)
	start := time.Now()

	resp, err := s.svc.client.SendTurn(ctx, id, text)
	if err != nil {
		failure := s.svc.recovery.Recover(ctx, domain.OperationSendTurn, err)
		s.fail(failure)
		s.emit(ctx, EventTurnFailed, observability.LevelError, map[string]any{
			"error":                   err.Error(),
			observability.DurationKey: time.Since(start).Milliseconds(),
		})
		return nil
	}

	reply := resp.Text()
	concluded := false

	s.mu.Lock()
	s.transcript = append(s.transcript, domain.NewAIMessage(reply))
	if s.status == domain.SessionStatusActive && s.svc.detector != nil && s.svc.detector.Concluded(reply) {
		concluded = s.advance(domain.SessionStatusConcluded)
	}
	s.mu.Unlock()

	s.emit(ctx, EventTurnComplete, observability.LevelInfo, map[string]any{
		observability.DurationKey: time.Since(start).Milliseconds(),
	})
	if concluded {
		s.emit(ctx, EventConcluded, observability.LevelInfo, nil)
	}
	return nil
}

// RequestReport fetches and stores the performance report. Once a report is
// stored later calls return immediately without contacting the service.
func (s *Session) RequestReport(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.id == "":
		s.mu.Unlock()
		return s.reject(ctx, "report", ErrNoSession)
	case s.pending:
		s.mu.Unlock()
		return s.reject(ctx, "report", ErrBusy)
	case s.report != nil:
		s.mu.Unlock()
		s.emit(ctx, EventReportCached, observability.LevelVerbose, nil)
		return nil
	}
	s.pending = true
	id := s.id
	s.mu.Unlock()
	defer s.release()

	s.emit(ctx, EventReportStart, observability.LevelVerbose, nil)
	start := time.Now()

	payload, err := s.svc.client.FetchReport(ctx, id)
	if err != nil {
		failure := s.svc.recovery.Recover(ctx, domain.OperationFetchReport, err)
		s.fail(failure)
		s.emit(ctx, EventReportFailed, observability.LevelError, map[string]any{
			"error":                   err.Error(),
			observability.DurationKey: time.Since(start).Milliseconds(),
		})
		return nil
	}

	r := report.Normalize(payload)

	s.mu.Lock()
	s.report = &r
	s.advance(domain.SessionStatusReportReady)
	s.mu.Unlock()

	s.emit(ctx, EventReportComplete, observability.LevelInfo, map[string]any{
		"overall_score":           r.OverallScore.String(),
		observability.DurationKey: time.Since(start).Milliseconds(),
	})
	return nil
}

// ID returns the session id, or "" before a successful Initialize.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Status returns the current lifecycle status.
func (s *Session) Status() domain.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Pending reports whether a remote call is outstanding.
func (s *Session) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// Transcript returns a copy of the transcript.
func (s *Session) Transcript() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Report returns the stored report, if any.
func (s *Session) Report() (domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return domain.Report{}, false
	}
	return *s.report, true
}

// LastFailure returns the most recent recovered failure, if any.
func (s *Session) LastFailure() (domain.Failure, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastFailure == nil {
		return domain.Failure{}, false
	}
	return *s.lastFailure, true
}

// Usable reports whether the session can still talk to the assessment service.
func (s *Session) Usable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id != ""
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		ID:         s.id,
		Status:     s.status,
		Pending:    s.pending,
		Transcript: make([]domain.Message, len(s.transcript)),
	}
	copy(snap.Transcript, s.transcript)
	if s.report != nil {
		r := *s.report
		snap.Report = &r
	}
	return snap
}

func (s *Session) release() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

// fail appends the recovery message and records the failure. Status is untouched.
func (s *Session) fail(f domain.Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, domain.NewAIMessage(f.Message))
	s.lastFailure = &f
}

// advance moves status forward only. Caller holds mu.
func (s *Session) advance(next domain.SessionStatus) bool {
	if !s.status.Precedes(next) {
		return false
	}
	s.status = next
	return true
}

func (s *Session) welcome(resp *domain.CreateSessionResponse) string {
	cfg := s.svc.config
	if cfg.WelcomeSource == config.WelcomeSourceLocal && cfg.LocalWelcome != "" {
		return cfg.LocalWelcome
	}
	if resp.InitialMessage != "" {
		return resp.InitialMessage
	}
	if cfg.FallbackWelcome != "" {
		return cfg.FallbackWelcome
	}
	return config.DefaultFallbackWelcome
}

func (s *Session) reject(ctx context.Context, op string, err error) error {
	s.emit(ctx, EventRejected, observability.LevelWarning, map[string]any{
		"operation": op,
		"reason":    err.Error(),
	})
	return err
}
