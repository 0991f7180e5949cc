// Package cli implements the interviewer command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interviewer",
	Short: "Conversational front-end for AI skills assessments",
	Long: `interviewer runs skills-assessment interviews against an assessment service.

Chat in the terminal, serve the WebSocket gateway for browser clients, or run
a local stand-in assessment service with a scripted Excel interviewer.`,
	SilenceUsage: true,
}

var (
	logLevel  string
	logFormat string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from LOG_FORMAT)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(gatewayCmd)
	rootCmd.AddCommand(assessorCmd)
}
