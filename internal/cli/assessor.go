package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiaot623/gogo/interviewer/internal/adapter/llm"
	"github.com/xiaot623/gogo/interviewer/internal/assessor"
	"github.com/xiaot623/gogo/interviewer/internal/observability"
	"github.com/xiaot623/gogo/interviewer/internal/repository"
	httptransport "github.com/xiaot623/gogo/interviewer/internal/transport/http"
)

var assessorCmd = &cobra.Command{
	Use:   "assessor",
	Short: "Run a local assessment service",
	Long: `Start a stand-in assessment service backed by SQLite and a scripted
Excel interviewer. It serves the same API the chat client and gateway use.

Examples:
  interviewer assessor
  interviewer assessor --port 8080 --db file:assessor.db --questions 3`,
	RunE: runAssessor,
}

var (
	assessorPort      int
	assessorDB        string
	assessorQuestions int
)

func init() {
	assessorCmd.Flags().IntVarP(&assessorPort, "port", "p", 0, "Port to listen on (default from ASSESSOR_PORT)")
	assessorCmd.Flags().StringVar(&assessorDB, "db", "", "SQLite DSN (default from ASSESSOR_DATABASE_URL)")
	assessorCmd.Flags().IntVar(&assessorQuestions, "questions", 0, "Number of questions (default from ASSESSOR_QUESTION_COUNT)")
}

func runAssessor(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if assessorPort != 0 {
		cfg.AssessorPort = assessorPort
	}
	if assessorDB != "" {
		cfg.AssessorDatabaseURL = assessorDB
	}
	if assessorQuestions != 0 {
		cfg.AssessorQuestionCount = assessorQuestions
	}

	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewSQLiteStore(cfg.AssessorDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	interviewer, err := llm.NewInterviewer(cfg.AssessorInterviewer, cfg.AssessorQuestionCount)
	if err != nil {
		return err
	}

	server := httptransport.NewAssessmentServer(assessor.New(db, interviewer, logger))

	logger.Info("starting assessor", "port", cfg.AssessorPort, "database", cfg.AssessorDatabaseURL,
		"questions", cfg.AssessorQuestionCount)
	return serve(ctx, server, cfg.AssessorPort)
}
