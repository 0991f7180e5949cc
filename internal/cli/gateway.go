package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httptransport "github.com/xiaot623/gogo/interviewer/internal/transport/http"
	"github.com/xiaot623/gogo/interviewer/internal/transport/ws"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Serve interviews to WebSocket clients",
	Long: `Start the WebSocket gateway. Every connection at /ws gets its own
interview session against the assessment service.

Examples:
  interviewer gateway
  interviewer gateway --port 9000`,
	RunE: runGateway,
}

var gatewayPort int

func init() {
	gatewayCmd.Flags().IntVarP(&gatewayPort, "port", "p", 0, "Port to listen on (default from INTERVIEWER_GATEWAY_PORT)")
}

func runGateway(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if gatewayPort != 0 {
		cfg.GatewayPort = gatewayPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.shutdown(context.Background())

	server := httptransport.NewGatewayServer(ws.NewServer(a.service, a.logger))

	a.logger.Info("starting gateway", "port", cfg.GatewayPort, "assessment_url", cfg.AssessmentURL)
	return serve(ctx, server, cfg.GatewayPort)
}

// echoServer is the part of *echo.Echo used by serve.
type echoServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

// serve runs server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, server echoServer, port int) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(fmt.Sprintf(":%d", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}
	return nil
}
