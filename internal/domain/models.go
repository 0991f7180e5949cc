package domain

import "time"

// Message is one turn in an interview transcript.
type Message struct {
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAIMessage creates an AI-authored message stamped with the current time.
func NewAIMessage(content string) Message {
	return Message{Content: content, Sender: SenderAI, CreatedAt: time.Now()}
}

// NewUserMessage creates a user-authored message stamped with the current time.
func NewUserMessage(content string) Message {
	return Message{Content: content, Sender: SenderUser, CreatedAt: time.Now()}
}

// Report is the terminal performance report of an interview.
type Report struct {
	OverallScore              Score  `json:"overallScore"`
	Strengths                 string `json:"strengths"`
	Weaknesses                string `json:"weaknesses"`
	SuggestionsForImprovement string `json:"suggestionsForImprovement"`
}

// Failure records the most recent remote call failure seen by a session.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Usable  bool        `json:"usable"`
	Err     error       `json:"-"`
}

// Interview is the assessment service's record of an interview.
type Interview struct {
	InterviewID string          `json:"id"`
	Status      InterviewStatus `json:"status"`
	StartedAt   time.Time       `json:"startTime"`
	EndedAt     *time.Time      `json:"endTime,omitempty"`
}

// InterviewMessage is a stored chat message in the assessment service.
type InterviewMessage struct {
	MessageID   string    `json:"message_id"`
	InterviewID string    `json:"interview_id"`
	Sender      Sender    `json:"sender"`
	Content     string    `json:"content"`
	Evaluation  string    `json:"evaluation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
