// Package service implements the interview session orchestrator.
package service

import (
	"github.com/xiaot623/gogo/interviewer/internal/adapter/assessment"
	"github.com/xiaot623/gogo/interviewer/internal/completion"
	"github.com/xiaot623/gogo/interviewer/internal/config"
	"github.com/xiaot623/gogo/interviewer/internal/observability"
	"github.com/xiaot623/gogo/interviewer/internal/recovery"
)

// Service holds the collaborators shared by every session it creates.
type Service struct {
	client   assessment.AssessmentClient
	detector completion.Detector
	recovery recovery.Policy
	observer observability.Observer
	config   *config.Config
}

// New creates a Service. A nil observer discards events and a nil recovery
// policy uses the built-in decision table.
func New(client assessment.AssessmentClient, detector completion.Detector, policy recovery.Policy, observer observability.Observer, cfg *config.Config) *Service {
	if policy == nil {
		policy = recovery.StaticPolicy{}
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Service{
		client:   client,
		detector: detector,
		recovery: policy,
		observer: observer,
		config:   cfg,
	}
}

// NewSession creates an uninitialized session. Sessions are independent of
// each other and may be used from different goroutines.
func (s *Service) NewSession() *Session {
	return newSession(s)
}
