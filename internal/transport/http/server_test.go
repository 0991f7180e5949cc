package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/interviewer/internal/adapter/llm"
	"github.com/xiaot623/gogo/interviewer/internal/assessor"
	"github.com/xiaot623/gogo/interviewer/internal/service"
	"github.com/xiaot623/gogo/interviewer/internal/transport/ws"
	"github.com/xiaot623/gogo/interviewer/tests/helpers"
)

func TestAssessmentServerRoutes(t *testing.T) {
	svc := assessor.New(helpers.NewTestSQLiteStore(t), llm.NewScriptedInterviewer(2), nil)
	e := NewAssessmentServer(svc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/interviews", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"initialMessage"`)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews/missing/chat", strings.NewReader(`{"content":"hi","sender":"USER"}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGatewayServerHealth(t *testing.T) {
	gw := ws.NewServer(service.New(nil, nil, nil, nil, nil), nil)
	e := NewGatewayServer(gw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
