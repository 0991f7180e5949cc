package assessor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// notAvailable fills report sections missing from the summary.
const notAvailable = "Not available."

var scorePattern = regexp.MustCompile(`(?i)(?:Overall Score|Score):\s*(\d+)\s*/\s*10`)

var (
	strengthsHeader   = regexp.MustCompile(`(?i)^#{2,3}\s*Strengths`)
	weaknessesHeader  = regexp.MustCompile(`(?i)^#{2,3}\s*(?:Areas for Improvement|Weaknesses)`)
	suggestionsHeader = regexp.MustCompile(`(?i)^#{2,3}\s*(?:Suggestions for Improvement|Suggestions)`)
)

// ParseReport extracts the score and the bullet sections from a Markdown
// summary. A missing score becomes "N/A" and missing sections "Not available.".
func ParseReport(text string) *domain.ReportPayload {
	report := &domain.ReportPayload{
		Strengths:                 extractSection(text, strengthsHeader),
		Weaknesses:                extractSection(text, weaknessesHeader),
		SuggestionsForImprovement: extractSection(text, suggestionsHeader),
	}

	report.OverallScore = domain.Score{Raw: "N/A"}
	if m := scorePattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			report.OverallScore = domain.NewScore(float64(v))
		}
	}
	return report
}

// extractSection returns the "-" bullet lines that follow the first heading
// matching header.
func extractSection(text string, header *regexp.Regexp) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !header.MatchString(strings.TrimSpace(line)) {
			continue
		}

		var bullets []string
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if strings.HasPrefix(trimmed, "-") {
				bullets = append(bullets, trimmed)
				continue
			}
			if trimmed == "" && len(bullets) == 0 {
				continue
			}
			break
		}
		if len(bullets) > 0 {
			return strings.Join(bullets, "\n")
		}
	}
	return notAvailable
}
