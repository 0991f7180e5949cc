package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiaot623/gogo/interviewer/internal/config"
	"github.com/xiaot623/gogo/interviewer/internal/domain"
	"github.com/xiaot623/gogo/interviewer/internal/service"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Take an interview in the terminal",
	Long: `Start an interview with the assessment service and chat in the terminal.

Commands:
  /report   request the performance report
  /quit     leave the interview

Examples:
  interviewer chat
  interviewer chat --url http://localhost:8080/api/v1 --welcome local`,
	RunE: runChat,
}

var (
	chatURL     string
	chatWelcome string
)

func init() {
	chatCmd.Flags().StringVar(&chatURL, "url", "", "Assessment service base URL (default from INTERVIEWER_ASSESSMENT_URL)")
	chatCmd.Flags().StringVar(&chatWelcome, "welcome", "", "Welcome source: service or local")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if chatURL != "" {
		cfg.AssessmentURL = chatURL
	}
	if chatWelcome != "" {
		cfg.WelcomeSource = config.WelcomeSource(chatWelcome)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.shutdown(context.Background())

	return runREPL(ctx, a.service.NewSession(), cmd.InOrStdin(), cmd.OutOrStdout())
}

// runREPL drives one session from line-oriented input until /quit, end of
// input or cancellation.
func runREPL(ctx context.Context, session *service.Session, in io.Reader, out io.Writer) error {
	if err := session.Initialize(ctx); err != nil {
		return err
	}
	printed := printMessages(out, session.Transcript(), 0)

	if !session.Usable() {
		return errors.New("could not start the interview")
	}

	concludedShown := false
	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		var opErr error
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/report":
			opErr = session.RequestReport(ctx)
		default:
			opErr = session.SendUserMessage(ctx, line)
		}

		fmt.Fprintln(out)
		printed = printMessages(out, session.Transcript(), printed)

		switch {
		case errors.Is(opErr, service.ErrNotActive):
			fmt.Fprintln(out, "The interview has concluded. Type /report to see your performance report.")
			fmt.Fprintln(out)
		case opErr != nil:
			fmt.Fprintf(out, "! %v\n\n", opErr)
		}

		if line == "/report" {
			if r, ok := session.Report(); ok {
				fmt.Fprintln(out, formatReport(r))
			}
		}

		if session.Status() == domain.SessionStatusConcluded && !concludedShown {
			concludedShown = true
			fmt.Fprintln(out, "The interview has concluded. Type /report to see your performance report.")
			fmt.Fprintln(out)
		}
	}
}
