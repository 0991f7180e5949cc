// Package ws provides the WebSocket gateway: one interview session per connection.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/interviewer/internal/service"
)

const (
	maxMessageSize = 64 * 1024
	readTimeout    = 60 * time.Second
	writeTimeout   = 10 * time.Second
	pingInterval   = 30 * time.Second
	sendBuffer     = 64
)

// Server handles WebSocket connections.
type Server struct {
	svc      *service.Service
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(svc *service.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes registers the gateway routes with the echo server.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", s.HandleWebSocket)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
}

// connection is one client connection and its session.
type connection struct {
	conn    *websocket.Conn
	session *service.Session
	send    chan []byte
	ctx     context.Context
	cancel  context.CancelFunc

	// flushMu serializes transcript flushes so frames keep transcript order.
	flushMu sync.Mutex
	flushed int
}

// HandleWebSocket upgrades the request and starts a new interview session.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Error("failed to upgrade websocket", "error", err)
		return err
	}
	ws.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(context.Background())
	conn := &connection{
		conn:    ws,
		session: s.svc.NewSession(),
		send:    make(chan []byte, sendBuffer),
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.writePump(conn)
	go s.readPump(conn)
	go s.run(conn, func(ctx context.Context) error { return conn.session.Initialize(ctx) })

	return nil
}

// readPump reads frames until the connection closes.
func (s *Server) readPump(conn *connection) {
	defer func() {
		conn.cancel()
		conn.conn.Close()
	}()

	conn.conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.conn.SetPongHandler(func(string) error {
		conn.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		s.handleFrame(conn, data)
	}
}

// writePump serializes writes to the connection.
func (s *Server) writePump(conn *connection) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.conn.Close()
	}()

	for {
		select {
		case <-conn.ctx.Done():
			conn.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			conn.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case data := <-conn.send:
			conn.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Warn("websocket write failed", "error", err)
				conn.cancel()
				return
			}

		case <-ticker.C:
			conn.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.cancel()
				return
			}
		}
	}
}

// handleFrame dispatches one client frame. Commands run in their own goroutine
// so a command arriving while another is in flight is rejected by the session.
func (s *Server) handleFrame(conn *connection, data []byte) {
	var base BaseFrame
	if err := json.Unmarshal(data, &base); err != nil {
		s.sendError(conn, ErrorCodeInvalidMessage, "invalid JSON frame")
		return
	}

	switch base.Type {
	case TypeStart:
		go s.run(conn, conn.session.Initialize)
	case TypeUserMessage:
		var frame UserMessageFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.sendError(conn, ErrorCodeInvalidMessage, "invalid user_message frame")
			return
		}
		go s.run(conn, func(ctx context.Context) error {
			return conn.session.SendUserMessage(ctx, frame.Content)
		})
	case TypeRequestReport:
		go s.run(conn, conn.session.RequestReport)
	default:
		s.sendError(conn, ErrorCodeInvalidMessage, "unknown frame type: "+base.Type)
	}
}

// run executes one session operation and pushes the resulting state.
func (s *Server) run(conn *connection, op func(ctx context.Context) error) {
	if err := op(conn.ctx); err != nil {
		s.sendError(conn, errorCode(err), err.Error())
		return
	}
	s.flush(conn)
}

// flush sends transcript entries not yet delivered, the report if any and the
// current status.
func (s *Server) flush(conn *connection) {
	conn.flushMu.Lock()
	defer conn.flushMu.Unlock()

	snap := conn.session.Snapshot()
	for _, msg := range snap.Transcript[conn.flushed:] {
		s.sendJSON(conn, MessageFrame{BaseFrame: s.base(TypeMessage, snap.ID), Message: msg})
	}
	conn.flushed = len(snap.Transcript)

	if snap.Report != nil {
		s.sendJSON(conn, ReportFrame{BaseFrame: s.base(TypeReport, snap.ID), Report: *snap.Report})
	}
	s.sendJSON(conn, StatusFrame{
		BaseFrame: s.base(TypeStatus, snap.ID),
		Status:    snap.Status,
		Pending:   snap.Pending,
		Usable:    snap.ID != "",
	})
}

func (s *Server) sendError(conn *connection, code, message string) {
	s.sendJSON(conn, ErrorFrame{
		BaseFrame: s.base(TypeError, conn.session.ID()),
		Code:      code,
		Message:   message,
	})
}

func (s *Server) sendJSON(conn *connection, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal frame", "error", err)
		return
	}
	select {
	case conn.send <- data:
	case <-conn.ctx.Done():
	}
}

func (s *Server) base(typ, sessionID string) BaseFrame {
	return BaseFrame{Type: typ, Ts: time.Now().UnixMilli(), SessionID: sessionID}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrBusy):
		return ErrorCodeBusy
	case errors.Is(err, service.ErrNoSession):
		return ErrorCodeNoSession
	case errors.Is(err, service.ErrNotActive):
		return ErrorCodeNotActive
	case errors.Is(err, service.ErrEmptyMessage):
		return ErrorCodeEmptyMessage
	case errors.Is(err, service.ErrAlreadyInitialized):
		return ErrorCodeAlreadyInitialized
	default:
		return ErrorCodeInternal
	}
}
