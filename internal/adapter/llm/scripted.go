package llm

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// EvaluationPrefix starts every reply that grades the previous answer.
const EvaluationPrefix = "Evaluation: "

// ClosingLine marks the end of the interview.
const ClosingLine = "That concludes our interview."

const maxPointsPerAnswer = 3

var pointsPattern = regexp.MustCompile(`\((\d)/3\)`)

// ScriptedInterviewer is a deterministic Excel interviewer. It grades answers
// by keyword coverage and needs no external model.
type ScriptedInterviewer struct {
	name      string
	questions []Question
}

// NewScriptedInterviewer creates an interviewer asking count questions of
// increasing difficulty. count is clamped to the available questions.
func NewScriptedInterviewer(count int) *ScriptedInterviewer {
	if count <= 0 || count > len(ExcelQuestions) {
		count = len(ExcelQuestions)
	}
	return &ScriptedInterviewer{
		name:      "Alex",
		questions: ExcelQuestions[:count],
	}
}

// Respond implements Interviewer. The first user turn opens the interview, the
// second starts the questions and every later turn is an answer.
func (s *ScriptedInterviewer) Respond(ctx context.Context, history []Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var answers []string
	for _, t := range history {
		if t.Role == RoleUser {
			answers = append(answers, t.Text)
		}
	}

	switch len(answers) {
	case 0, 1:
		return s.introduction(), nil
	case 2:
		return fmt.Sprintf("Great, let's begin.\n\nQuestion 1: %s", s.questions[0].Prompt), nil
	}

	answered := len(answers) - 3
	if answered >= len(s.questions) {
		return fmt.Sprintf("%s Thank you again for your time. You can now request your performance report.", ClosingLine), nil
	}

	q := s.questions[answered]
	points := Grade(q, answers[len(answers)-1])
	evaluation := EvaluationPrefix + feedback(q, points)

	next := answered + 1
	if next >= len(s.questions) {
		return fmt.Sprintf("%s\n\n%s Thank you for your answers. You can now request your performance report.", evaluation, ClosingLine), nil
	}
	return fmt.Sprintf("%s\n\nQuestion %d: %s", evaluation, next+1, s.questions[next].Prompt), nil
}

// Summarize implements Interviewer. The overall score is the evaluation total
// normalized to 10 and rounded.
func (s *ScriptedInterviewer) Summarize(ctx context.Context, history []Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var scores []int
	for _, t := range history {
		if t.Role != RoleModel || !strings.HasPrefix(t.Text, EvaluationPrefix) {
			continue
		}
		if m := pointsPattern.FindStringSubmatch(t.Text); m != nil {
			n, _ := strconv.Atoi(m[1])
			scores = append(scores, n)
		}
	}

	var strengths, weaknesses, suggestions []string
	total := 0
	for i, n := range scores {
		total += n
		if i >= len(s.questions) {
			continue
		}
		q := s.questions[i]
		switch {
		case n >= 2:
			strengths = append(strengths, fmt.Sprintf("Solid understanding of %s", q.Topic))
		default:
			weaknesses = append(weaknesses, fmt.Sprintf("Limited grasp of %s", q.Topic))
			suggestions = append(suggestions, fmt.Sprintf("Review %s: %s", q.Topic, q.Hint))
		}
	}

	var b strings.Builder
	b.WriteString("## Performance Summary\n\n")
	if len(scores) == 0 {
		b.WriteString("No answers were evaluated.\n")
	} else {
		score := NormalizeScore(total, len(scores)*maxPointsPerAnswer)
		fmt.Fprintf(&b, "Overall Score: %d / 10\n", score)
	}
	writeSection(&b, "Strengths", strengths)
	writeSection(&b, "Weaknesses", weaknesses)
	writeSection(&b, "Suggestions for Improvement", suggestions)
	return b.String(), nil
}

// NormalizeScore scales total out of max to a 0-10 score.
func NormalizeScore(total, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(max) * 10))
}

// Grade scores an answer 0-3 by how many rubric keywords it mentions.
func Grade(q Question, answer string) int {
	lower := strings.ToLower(strings.TrimSpace(answer))
	if lower == "" || strings.Contains(lower, "don't know") || strings.Contains(lower, "dont know") {
		return 0
	}

	hits := 0
	for _, k := range q.Keywords {
		if strings.Contains(lower, k) {
			hits++
		}
	}
	if hits > maxPointsPerAnswer {
		hits = maxPointsPerAnswer
	}
	return hits
}

func feedback(q Question, points int) string {
	switch points {
	case 3:
		return fmt.Sprintf("Correct and well-explained (%d/3).", points)
	case 2:
		return fmt.Sprintf("Mostly correct but missing some details on %s (%d/3).", q.Topic, points)
	case 1:
		return fmt.Sprintf("Partially correct; hint: %s (%d/3).", q.Hint, points)
	default:
		return fmt.Sprintf("Incorrect or missing; hint: %s (%d/3).", q.Hint, points)
	}
}

func (s *ScriptedInterviewer) introduction() string {
	return fmt.Sprintf("Hello! I'm %s, your Excel interviewer. This interview will consist of %d questions of increasing difficulty, "+
		"from basic formulas to advanced features. I'll give you brief feedback after each answer.\n\n"+
		"When you are ready to begin, simply type \"Start\".", s.name, len(s.questions))
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
