package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// maxErrorBody bounds how much of a failed response body is kept in errors.
const maxErrorBody = 512

var errMissingID = errors.New("response has no interview id")

// Client is the assessment service HTTP client. It performs no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new assessment client. baseURL includes the versioned
// base path, for example http://localhost:8080/api/v1.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateSession calls POST /interviews.
func (c *Client) CreateSession(ctx context.Context) (*domain.CreateSessionResponse, error) {
	var resp domain.CreateSessionResponse
	if err := c.do(ctx, domain.OperationCreateSession, http.MethodPost, "/interviews", nil, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, &domain.TransportError{Op: domain.OperationCreateSession, Kind: domain.TransportErrorDecode, Err: errMissingID}
	}
	return &resp, nil
}

// SendTurn calls POST /interviews/{id}/chat.
func (c *Client) SendTurn(ctx context.Context, sessionID, text string) (*domain.ChatResponse, error) {
	req := &domain.ChatRequest{Content: text, Sender: domain.SenderUser}

	var resp domain.ChatResponse
	path := "/interviews/" + url.PathEscape(sessionID) + "/chat"
	if err := c.do(ctx, domain.OperationSendTurn, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchReport calls GET /interviews/{id}/report.
func (c *Client) FetchReport(ctx context.Context, sessionID string) (*domain.ReportPayload, error) {
	var resp domain.ReportPayload
	path := "/interviews/" + url.PathEscape(sessionID) + "/report"
	if err := c.do(ctx, domain.OperationFetchReport, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes one JSON request/response exchange and maps every failure to a
// *domain.TransportError.
func (c *Client) do(ctx context.Context, op domain.Operation, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.TransportError{Op: op, Kind: domain.TransportErrorNetwork, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.TransportError{Op: op, Kind: domain.TransportErrorNetwork, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &domain.TransportError{Op: op, Kind: domain.TransportErrorNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.TransportError{
			Op:         op,
			Kind:       domain.TransportErrorStatus,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.TransportError{Op: op, Kind: domain.TransportErrorDecode, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
