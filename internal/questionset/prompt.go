package questionset

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a subject expert who writes exam-style practice sets for secondary school students.

Structure:
- 12 multiple_choice items (foundational). Each has 4 options with ids A, B, C, D and exactly one correct option.
- 4 true_false items (intermediate). Each has one context and exactly 4 independent statements, each true or false.
- 6 short_answer items (advanced). Each answer is a single number or a short phrase.

Math notation:
- Write every formula in LaTeX between $ signs: $a \cdot b$, $\frac{a}{b}$, $a^{n}$, $\sqrt{x}$.
- Every LaTeX command must keep its backslash.

Clean text:
- Never put the answer, the words "True/False", "Answer:" or any explanation inside question, context or statement.
- A statement is a single assertion for the student to judge, with no question mark.
- All reasoning and answers belong in the explanation field only.
- Short answers use a dot as decimal separator and no units.`

// buildUserMessage names the topic and carries a one-off version tag so a
// repeated topic yields a fresh set.
func buildUserMessage(subject, topic, language, version string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Topic: %q\n", strings.TrimSpace(topic))
	fmt.Fprintf(&b, "Language: write every field in %s.\n", language)
	fmt.Fprintf(&b, "Version: %s\n", version)
	b.WriteString("\nReturn JSON matching the schema. Do not leak answers into question text.")
	return b.String()
}
