// Package report maps raw report payloads onto the canonical report.
package report

import "github.com/xiaot623/gogo/interviewer/internal/domain"

// Normalize copies the four canonical fields verbatim. The score is not
// recomputed and bullet text is not reformatted.
func Normalize(payload *domain.ReportPayload) domain.Report {
	if payload == nil {
		return domain.Report{}
	}
	return domain.Report{
		OverallScore:              payload.OverallScore,
		Strengths:                 payload.Strengths,
		Weaknesses:                payload.Weaknesses,
		SuggestionsForImprovement: payload.SuggestionsForImprovement,
	}
}
