// Package assessor implements a local stand-in for the assessment service.
package assessor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xiaot623/gogo/interviewer/internal/adapter/llm"
	"github.com/xiaot623/gogo/interviewer/internal/domain"
	"github.com/xiaot623/gogo/interviewer/internal/repository"
)

// openingPrompt seeds the conversation history before the first reply.
const openingPrompt = "Start the Excel interview."

// Service runs interviews against an Interviewer and persists them.
type Service struct {
	store       repository.Store
	interviewer llm.Interviewer
	logger      *slog.Logger
}

// New creates an assessor service.
func New(store repository.Store, interviewer llm.Interviewer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, interviewer: interviewer, logger: logger}
}

// StartResult is the outcome of starting an interview.
type StartResult struct {
	Interview      *domain.Interview
	InitialMessage string
}

// StartInterview creates an active interview and stores the opening message.
func (s *Service) StartInterview(ctx context.Context) (*StartResult, error) {
	interview := &domain.Interview{
		InterviewID: uuid.NewString(),
		Status:      domain.InterviewStatusActive,
		StartedAt:   time.Now(),
	}
	if err := s.store.CreateInterview(ctx, interview); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	reply, err := s.interviewer.Respond(ctx, []llm.Turn{{Role: llm.RoleUser, Text: openingPrompt}})
	if err != nil {
		return nil, fmt.Errorf("failed to generate opening: %w", err)
	}

	msg := newMessage(interview.InterviewID, domain.SenderAI, reply, "")
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store opening: %w", err)
	}

	s.logger.InfoContext(ctx, "interview started", "interview_id", interview.InterviewID)
	return &StartResult{Interview: interview, InitialMessage: reply}, nil
}

// Chat stores the user's message and returns the interviewer's reply with any
// evaluation split off from the visible content.
func (s *Service) Chat(ctx context.Context, interviewID, content string) (*domain.InterviewMessage, error) {
	interview, err := s.activeInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	userMsg := newMessage(interview.InterviewID, domain.SenderUser, content, "")
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	history, err := s.history(ctx, interview.InterviewID)
	if err != nil {
		return nil, err
	}

	reply, err := s.interviewer.Respond(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}

	evaluation, text := SplitEvaluation(reply)
	aiMsg := newMessage(interview.InterviewID, domain.SenderAI, text, evaluation)
	if err := s.store.CreateMessage(ctx, aiMsg); err != nil {
		return nil, fmt.Errorf("failed to store reply: %w", err)
	}
	return aiMsg, nil
}

// Report returns the interview report, generating and storing it on the first
// call and completing the interview.
func (s *Service) Report(ctx context.Context, interviewID string) (*domain.ReportPayload, error) {
	interview, err := s.getInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.GetReport(ctx, interview.InterviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if stored != nil {
		return stored, nil
	}

	history, err := s.history(ctx, interview.InterviewID)
	if err != nil {
		return nil, err
	}

	summary, err := s.interviewer.Summarize(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	report := ParseReport(summary)

	if err := s.store.SaveReport(ctx, interview.InterviewID, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	if err := s.store.CompleteInterview(ctx, interview.InterviewID); err != nil {
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}

	s.logger.InfoContext(ctx, "interview completed",
		"interview_id", interview.InterviewID, "overall_score", report.OverallScore.String())
	return report, nil
}

// GetInterview returns an interview by id.
func (s *Service) GetInterview(ctx context.Context, interviewID string) (*domain.Interview, error) {
	return s.getInterview(ctx, interviewID)
}

func (s *Service) getInterview(ctx context.Context, interviewID string) (*domain.Interview, error) {
	interview, err := s.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	if interview == nil {
		return nil, domain.ErrNotFound
	}
	return interview, nil
}

func (s *Service) activeInterview(ctx context.Context, interviewID string) (*domain.Interview, error) {
	interview, err := s.getInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != domain.InterviewStatusActive {
		return nil, domain.ErrInterviewClosed
	}
	return interview, nil
}

// history rebuilds the conversation including stored evaluations, so the
// interviewer can grade the whole interview.
func (s *Service) history(ctx context.Context, interviewID string) ([]llm.Turn, error) {
	messages, err := s.store.GetMessages(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	turns := make([]llm.Turn, 0, len(messages)+1)
	turns = append(turns, llm.Turn{Role: llm.RoleUser, Text: openingPrompt})
	for _, m := range messages {
		if m.Sender == domain.SenderUser {
			turns = append(turns, llm.Turn{Role: llm.RoleUser, Text: m.Content})
			continue
		}
		text := m.Content
		if m.Evaluation != "" {
			text = llm.EvaluationPrefix + m.Evaluation + "\n\n" + m.Content
		}
		turns = append(turns, llm.Turn{Role: llm.RoleModel, Text: text})
	}
	return turns, nil
}

// SplitEvaluation separates a leading "Evaluation: ..." line from the rest of
// the reply. Replies without the prefix or the blank-line separator are
// returned unchanged.
func SplitEvaluation(reply string) (evaluation, text string) {
	if !strings.HasPrefix(reply, llm.EvaluationPrefix) {
		return "", reply
	}
	idx := strings.Index(reply, "\n\n")
	if idx == -1 {
		return "", reply
	}
	return strings.TrimSpace(reply[len(llm.EvaluationPrefix):idx]), strings.TrimSpace(reply[idx+2:])
}

func newMessage(interviewID string, sender domain.Sender, content, evaluation string) *domain.InterviewMessage {
	return &domain.InterviewMessage{
		MessageID:   uuid.NewString(),
		InterviewID: interviewID,
		Sender:      sender,
		Content:     content,
		Evaluation:  evaluation,
		CreatedAt:   time.Now(),
	}
}
