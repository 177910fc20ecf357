package content

import "strings"

// Question is a single multiple-choice question. Options are zero-indexed
// and Correct is the index of the right option.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// OptionCount returns the number of options the question offers.
func (q Question) OptionCount() int {
	return len(q.Options)
}

// IsCorrect reports whether option i is the correct answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.Correct
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

func (q Question) clone() Question {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}

// Section is one chapter of the study material.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Paragraphs splits the body on blank lines.
func (s Section) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(s.Body, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Summary returns the opening paragraph of the section.
func (s Section) Summary() string {
	first, _, _ := strings.Cut(s.Body, "\n")
	return strings.TrimSpace(first)
}

// Term is a glossary entry.
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}
