package qgen

import (
	"fmt"
	"strings"

	"github.com/inferahq/infera/internal/gateway"
)

const systemPrompt = `You are an adaptive tutor creating multiple-choice practice questions.

Rules:
- Generate a single question matched to the learner's current performance.
- Use plain ASCII text. No LaTeX, no Unicode symbols. Use / for fractions, * for multiplication, and standard operators.
- The question text must be clear and self-contained.
- Provide exactly 4 options where exactly one is correct. Distractors should reflect common mistakes, not random values.
- If recent accuracy is high or the streak is long, step the difficulty up. If accuracy is low, step it down and target the basics.
- If the learner left a steering note, honor it over everything else.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage renders the session context into the prompt.
func buildUserMessage(req gateway.Request, prior []string, maxPrior int) string {
	var b strings.Builder

	if len(req.Subjects) > 0 {
		fmt.Fprintf(&b, "Subjects: %s\n", strings.Join(req.Subjects, ", "))
	}
	if len(req.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(req.Topics, ", "))
	}

	if req.RecentAccuracy >= 0 {
		fmt.Fprintf(&b, "Recent accuracy: %.0f%%\n", req.RecentAccuracy)
	} else {
		b.WriteString("Recent accuracy: no attempts yet\n")
	}
	fmt.Fprintf(&b, "Current streak: %d\n", req.Streak)

	if req.Hint != "" {
		fmt.Fprintf(&b, "\nLearner steering note: %s\n", req.Hint)
	}

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(formatPrior(prior, maxPrior))

	return b.String()
}

// formatPrior lists recent question texts, newest last, capped at max.
func formatPrior(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
