package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/stratiz/internal/content"
)

const systemPrompt = `You are a concise tutor for an introductory course on global strategy. You explain multiple-choice answers using only the course material provided. Never invent facts about specific companies.`

func buildUserMessage(pack *content.Pack, q content.Question, selected int) string {
	var b strings.Builder

	if pack != nil {
		fmt.Fprintf(&b, "Course: %s\n\n", pack.Title())

		b.WriteString("Chapter summaries:\n")
		for _, sec := range pack.Sections() {
			fmt.Fprintf(&b, "- %s: %s\n", sec.Title, sec.Summary())
		}

		b.WriteString("\nGlossary:\n")
		for _, t := range pack.Glossary() {
			fmt.Fprintf(&b, "- %s: %s\n", t.Term, t.Definition)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, opt)
	}
	fmt.Fprintf(&b, "\nCorrect answer: %c) %s\n", 'A'+q.Correct, q.CorrectOption())
	if q.IsCorrect(selected) {
		b.WriteString("The student chose the correct answer.\n")
	} else {
		fmt.Fprintf(&b, "The student chose: %c) %s\n", 'A'+selected, q.Options[selected])
	}

	b.WriteString(`
Instructions:
1. State the correct answer in one sentence.
2. Explain why it is correct in 2-3 sentences, citing the chapter or glossary term it comes from.
3. If the student chose a different option, explain the flaw in that option in 1-2 sentences. Otherwise leave why_chosen_is_wrong empty.
4. Name the one key concept to review.
5. Plain text only. No markdown.`)

	return b.String()
}
