// Package v1 provides the assessment service HTTP API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/interviewer/internal/assessor"
	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// Handler handles HTTP requests.
type Handler struct {
	service *assessor.Service
}

// NewHandler creates a new handler.
func NewHandler(service *assessor.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the interview routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/interviews", h.StartInterview)
	g.GET("/interviews/:id", h.GetInterview)
	g.POST("/interviews/:id/chat", h.Chat)
	g.GET("/interviews/:id/report", h.GetReport)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: "interview not found"})
	case errors.Is(err, domain.ErrInterviewClosed):
		return c.JSON(http.StatusConflict, domain.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: err.Error()})
	}
}
