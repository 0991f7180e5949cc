package domain

// CreateSessionResponse is the response body of POST /interviews.
type CreateSessionResponse struct {
	ID             string `json:"id"`
	InitialMessage string `json:"initialMessage,omitempty"`
}

// ChatRequest is the request body of POST /interviews/{id}/chat.
type ChatRequest struct {
	Content string `json:"content"`
	Sender  Sender `json:"sender"`
}

// ChatResponse is the response body of POST /interviews/{id}/chat.
// Older service builds send the text under "message" instead of "content".
type ChatResponse struct {
	Content string `json:"content"`
	Message string `json:"message,omitempty"`
	Sender  Sender `json:"sender"`
}

// Text returns the AI reply text regardless of which field carried it.
func (r *ChatResponse) Text() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Message
}

// ReportPayload is the raw response body of GET /interviews/{id}/report.
type ReportPayload struct {
	OverallScore              Score  `json:"overallScore"`
	Strengths                 string `json:"strengths"`
	Weaknesses                string `json:"weaknesses"`
	SuggestionsForImprovement string `json:"suggestionsForImprovement"`
}

// ErrorResponse is the error body returned by the assessment service.
type ErrorResponse struct {
	Error string `json:"error"`
}
