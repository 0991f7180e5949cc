package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// StartInterviewResponse is the response of POST /api/v1/interviews.
type StartInterviewResponse struct {
	domain.Interview
	InitialMessage string `json:"initialMessage,omitempty"`
}

// ChatMessageResponse is the response of POST /api/v1/interviews/:id/chat.
type ChatMessageResponse struct {
	Content    string        `json:"content"`
	Sender     domain.Sender `json:"sender"`
	Evaluation string        `json:"evaluation,omitempty"`
	CreatedAt  int64         `json:"created_at"`
}

// StartInterview creates a new interview.
// POST /api/v1/interviews
func (h *Handler) StartInterview(c echo.Context) error {
	ctx := c.Request().Context()

	res, err := h.service.StartInterview(ctx)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, StartInterviewResponse{
		Interview:      *res.Interview,
		InitialMessage: res.InitialMessage,
	})
}

// GetInterview returns an interview.
// GET /api/v1/interviews/:id
func (h *Handler) GetInterview(c echo.Context) error {
	ctx := c.Request().Context()

	interview, err := h.service.GetInterview(ctx, c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, interview)
}

// Chat sends one user message and returns the interviewer's reply.
// POST /api/v1/interviews/:id/chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "invalid request body"})
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "content is required"})
	}
	if req.Sender != "" && req.Sender != domain.SenderUser {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "sender must be USER"})
	}

	msg, err := h.service.Chat(ctx, c.Param("id"), content)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, ChatMessageResponse{
		Content:    msg.Content,
		Sender:     msg.Sender,
		Evaluation: msg.Evaluation,
		CreatedAt:  msg.CreatedAt.UnixMilli(),
	})
}

// GetReport returns the interview report, generating it on first request.
// GET /api/v1/interviews/:id/report
func (h *Handler) GetReport(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := h.service.Report(ctx, c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
