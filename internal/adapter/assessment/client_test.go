package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

func TestClientCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/interviews" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("missing content type header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"s1","initialMessage":"Hello"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/v1/", time.Second)
	resp, err := client.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if resp.ID != "s1" || resp.InitialMessage != "Hello" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientCreateSessionWithoutInitialMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"s2","status":"ACTIVE","startTime":"2025-01-01T10:00:00"}`)
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if resp.ID != "s2" || resp.InitialMessage != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientCreateSessionMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).CreateSession(context.Background())
	te, ok := domain.IsTransportError(err)
	if !ok {
		t.Fatalf("expected transport error, got %v", err)
	}
	if te.Kind != domain.TransportErrorDecode {
		t.Fatalf("unexpected kind: %s", te.Kind)
	}
}

func TestClientSendTurn(t *testing.T) {
	var gotReq domain.ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/interviews/s1/chat" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"content":"Let's begin with VLOOKUP.","sender":"AI"}`)
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).SendTurn(context.Background(), "s1", "Start")
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if gotReq.Content != "Start" || gotReq.Sender != domain.SenderUser {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
	if resp.Text() != "Let's begin with VLOOKUP." || resp.Sender != domain.SenderAI {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientSendTurnLegacyMessageField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"m1","sender":"AI","message":"Next question.","evaluation":"Correct (3/3)."}`)
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).SendTurn(context.Background(), "s1", "answer")
	if err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if resp.Text() != "Next question." {
		t.Fatalf("unexpected text: %q", resp.Text())
	}
}

func TestClientFetchReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/interviews/s1/report" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"overallScore":8,"strengths":"-a\n-b","weaknesses":"-c","suggestionsForImprovement":"-d"}`)
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).FetchReport(context.Background(), "s1")
	if err != nil {
		t.Fatalf("FetchReport failed: %v", err)
	}
	if !resp.OverallScore.Valid || resp.OverallScore.Value != 8 {
		t.Fatalf("unexpected score: %+v", resp.OverallScore)
	}
	if resp.Strengths != "-a\n-b" || resp.Weaknesses != "-c" || resp.SuggestionsForImprovement != "-d" {
		t.Fatalf("unexpected report: %+v", resp)
	}
}

func TestClientStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"boom"}`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).SendTurn(context.Background(), "s1", "hi")
	if err == nil {
		t.Fatalf("expected error")
	}
	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %T", err)
	}
	if te.Kind != domain.TransportErrorStatus || te.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected error: %+v", te)
	}
	if te.Op != domain.OperationSendTurn {
		t.Fatalf("unexpected op: %s", te.Op)
	}
	if te.Body != `{"error":"boom"}` {
		t.Fatalf("unexpected body: %q", te.Body)
	}
}

func TestClientDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).FetchReport(context.Background(), "s1")
	te, ok := domain.IsTransportError(err)
	if !ok || te.Kind != domain.TransportErrorDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).CreateSession(context.Background())
	te, ok := domain.IsTransportError(err)
	if !ok || te.Kind != domain.TransportErrorNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	_, err := NewClient(server.URL, 50*time.Millisecond).SendTurn(context.Background(), "s1", "hi")
	te, ok := domain.IsTransportError(err)
	if !ok || te.Kind != domain.TransportErrorNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestClientEscapesSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/interviews/a%2Fb/report" {
			t.Fatalf("unexpected path: %s", r.URL.EscapedPath())
		}
		fmt.Fprint(w, `{"overallScore":"N/A","strengths":"Not available."}`)
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).FetchReport(context.Background(), "a/b")
	if err != nil {
		t.Fatalf("FetchReport failed: %v", err)
	}
	if resp.OverallScore.Valid || resp.OverallScore.String() != "N/A" {
		t.Fatalf("unexpected score: %+v", resp.OverallScore)
	}
}
