// Package http provides the HTTP servers of the interviewer.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/xiaot623/gogo/interviewer/internal/assessor"
	v1 "github.com/xiaot623/gogo/interviewer/internal/transport/http/v1"
	"github.com/xiaot623/gogo/interviewer/internal/transport/ws"
)

// NewAssessmentServer creates the stand-in assessment service HTTP server.
func NewAssessmentServer(svc *assessor.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	v1.NewHandler(svc).RegisterRoutes(e)

	return e
}

// NewGatewayServer creates the WebSocket gateway HTTP server.
func NewGatewayServer(gateway *ws.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	gateway.RegisterRoutes(e)

	return e
}
