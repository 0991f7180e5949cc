package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xiaot623/gogo/interviewer/internal/adapter/assessment"
	"github.com/xiaot623/gogo/interviewer/internal/completion"
	"github.com/xiaot623/gogo/interviewer/internal/config"
	"github.com/xiaot623/gogo/interviewer/internal/observability"
	"github.com/xiaot623/gogo/interviewer/internal/recovery"
	"github.com/xiaot623/gogo/interviewer/internal/service"
	"github.com/xiaot623/gogo/interviewer/policy"
)

// loadConfig reads the environment and applies global flag overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	return cfg
}

// app is the wired orchestrator and its supporting infrastructure.
type app struct {
	service  *service.Service
	logger   *slog.Logger
	shutdown func(context.Context) error
}

// newApp wires the orchestrator. Logs go to logOut; metrics are exported only
// when OTel is enabled.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logger := observability.NewLogger(logOut, cfg.LogLevel, cfg.LogFormat)

	observers := []observability.Observer{observability.NewSlogObserver(logger)}
	shutdown := func(context.Context) error { return nil }

	if cfg.OTelEnabled {
		provider, err := observability.NewMeterProvider(ctx, observability.MetricsConfig{
			Endpoint: cfg.OTelEndpoint,
			Enabled:  cfg.OTelEnabled,
			Insecure: cfg.OTelInsecure,
		})
		if err != nil {
			logger.Warn("metrics disabled", "error", err)
		} else {
			metrics, err := observability.NewMetricsObserver(provider)
			if err != nil {
				return nil, fmt.Errorf("failed to create metrics observer: %w", err)
			}
			observers = append(observers, metrics)
			shutdown = provider.Shutdown
		}
	}

	engine, err := policy.NewEngineFromFile(ctx, cfg.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recovery policy: %w", err)
	}

	client := assessment.NewClient(cfg.AssessmentURL, cfg.RequestTimeout)
	detector := completion.NewPhraseDetector(cfg.SentinelPhrases...)
	svc := service.New(client, detector, recovery.NewRegoPolicy(engine, logger), observability.NewMultiObserver(observers...), cfg)

	return &app{service: svc, logger: logger, shutdown: shutdown}, nil
}
