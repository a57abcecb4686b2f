package lessons

import (
	"fmt"
	"strings"
)

const tipSystemPrompt = `You are a prompting coach. A student is practicing how to ask an AI for help in a way that builds their own understanding instead of outsourcing the work. Be brief and kind.`

func buildTipUserMessage(in TipInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lesson: %s\n", in.Lesson.Title)
	fmt.Fprintf(&b, "Exercise: %s\n", in.Exercise.Prompt)
	fmt.Fprintf(&b, "Expected intent: %s\n", in.Exercise.ExpectedIntent.Label())
	if len(in.Exercise.Hints) > 0 {
		fmt.Fprintf(&b, "Hints: %s\n", strings.Join(in.Exercise.Hints, "; "))
	}
	fmt.Fprintf(&b, "Good example: %s\n", in.Exercise.GoodExample)

	fmt.Fprintf(&b, "\nStudent prompt:\n%s\n", in.Prompt)

	s := in.Result.Score
	fmt.Fprintf(&b, "\nRubric result:\nDetected intent: %s\n", s.Intent.Label())
	fmt.Fprintf(&b, "Total: %.0f/100 (learning %.0f, specificity %.0f, engagement %.0f)\n",
		s.Total, s.Learning, s.Specificity, s.Engagement)

	b.WriteString(`
Instructions:
1. Explain in one or two sentences what kept this prompt from passing.
2. Give one concrete change the student should make next time.
3. Rewrite the student's own prompt so it would pass. Keep their topic; do not copy the good example.
4. Use plain text only.`)

	return b.String()
}
