package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/interviewer/internal/adapter/llm"
	"github.com/xiaot623/gogo/interviewer/internal/assessor"
	"github.com/xiaot623/gogo/interviewer/internal/domain"
	"github.com/xiaot623/gogo/interviewer/tests/helpers"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := helpers.NewTestSQLiteStore(t)
	svc := assessor.New(db, llm.NewScriptedInterviewer(1), nil)
	return NewHandler(svc)
}

func doRequest(t *testing.T, h echo.HandlerFunc, method, path, body string, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func startInterview(t *testing.T, h *Handler) domain.CreateSessionResponse {
	t.Helper()
	rec := doRequest(t, h.StartInterview, http.MethodPost, "/api/v1/interviews", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp domain.CreateSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.ID == "" || resp.InitialMessage == "" {
		t.Fatalf("unexpected start response: %s", rec.Body.String())
	}
	return resp
}

func TestStartInterview(t *testing.T) {
	h := newTestHandler(t)
	resp := startInterview(t, h)

	rec := doRequest(t, h.GetInterview, http.MethodGet, "/api/v1/interviews/"+resp.ID, "", resp.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var interview domain.Interview
	if err := json.Unmarshal(rec.Body.Bytes(), &interview); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if interview.Status != domain.InterviewStatusActive {
		t.Fatalf("expected ACTIVE, got %s", interview.Status)
	}
}

func TestChatValidation(t *testing.T) {
	h := newTestHandler(t)
	resp := startInterview(t, h)

	rec := doRequest(t, h.Chat, http.MethodPost, "/", `{"content":"   "}`, resp.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, h.Chat, http.MethodPost, "/", `{"content":"hi","sender":"AI"}`, resp.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChatUnknownInterview(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h.Chat, http.MethodPost, "/", `{"content":"hi","sender":"USER"}`, "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChatAndReport(t *testing.T) {
	h := newTestHandler(t)
	resp := startInterview(t, h)

	rec := doRequest(t, h.Chat, http.MethodPost, "/", `{"content":"Start","sender":"USER"}`, resp.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var chat domain.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &chat); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if chat.Sender != domain.SenderAI || chat.Text() == "" {
		t.Fatalf("unexpected chat response: %s", rec.Body.String())
	}

	rec = doRequest(t, h.Chat, http.MethodPost, "/", `{"content":"Absolute refs use $ and do not change on copy","sender":"USER"}`, resp.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var final ChatMessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &final); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if final.Evaluation == "" || !bytes.Contains([]byte(final.Content), []byte(llm.ClosingLine)) {
		t.Fatalf("expected closing message with evaluation, got %+v", final)
	}

	rec = doRequest(t, h.GetReport, http.MethodGet, "/", "", resp.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var report domain.ReportPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !report.OverallScore.Valid || report.OverallScore.Value != 10 {
		t.Fatalf("expected score 10, got %s", report.OverallScore)
	}

	rec = doRequest(t, h.Chat, http.MethodPost, "/", `{"content":"again","sender":"USER"}`, resp.ID)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h.Health, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
