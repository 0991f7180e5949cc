package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// printMessages writes transcript entries from index from onwards and returns
// the new transcript length.
func printMessages(w io.Writer, transcript []domain.Message, from int) int {
	for _, msg := range transcript[from:] {
		switch msg.Sender {
		case domain.SenderUser:
			fmt.Fprintf(w, "You: %s\n\n", msg.Content)
		default:
			fmt.Fprintf(w, "Alex: %s\n\n", msg.Content)
		}
	}
	return len(transcript)
}

// formatReport renders a report for the terminal. Lines starting with "-"
// become bullets; other text is kept as is.
func formatReport(r domain.Report) string {
	var b strings.Builder
	b.WriteString("=== Performance Report ===\n\n")
	fmt.Fprintf(&b, "Overall Score: %s / 10\n", r.OverallScore)
	writeReportSection(&b, "Strengths", r.Strengths)
	writeReportSection(&b, "Areas for Improvement", r.Weaknesses)
	writeReportSection(&b, "Suggestions", r.SuggestionsForImprovement)
	return b.String()
}

func writeReportSection(b *strings.Builder, title, text string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") {
			fmt.Fprintf(b, "  • %s\n", strings.TrimSpace(strings.TrimPrefix(line, "-")))
			continue
		}
		fmt.Fprintf(b, "  %s\n", line)
	}
}
