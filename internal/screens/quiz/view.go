package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/stratiz/internal/quiz"
	"github.com/abhisek/stratiz/internal/tutor"
	"github.com/abhisek/stratiz/internal/ui/components"
	"github.com/abhisek/stratiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.sess.State() {
	case qz.StateInProgress:
		body = s.renderQuestion(cw)
	case qz.StateCompleted:
		body = s.renderResults(cw)
	default:
		body = s.renderIdle(cw)
	}

	if s.notice != "" {
		body += "\n\n" + theme.Hint.Render(s.notice)
	}
	if s.warning != "" {
		body += "\n\n" + theme.Warn.Render(s.warning)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (s *QuizScreen) renderIdle(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Quiz"))
	b.WriteString("\n\n")
	b.WriteString(components.Wrap(theme.Body.Render(fmt.Sprintf(
		"Test your knowledge of %s with %d multiple-choice questions.",
		s.pack.Title(), s.sess.QuestionCount())), cw))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Start Quiz", nil).View())
	return b.String()
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q, err := s.sess.CurrentQuestion()
	if err != nil {
		return ""
	}
	idx := s.sess.CurrentIndex()
	total := s.sess.QuestionCount()

	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Question %d of %d", idx+1, total)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", idx, total, cw).View())
	b.WriteString("\n\n")
	b.WriteString(components.Wrap(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(q.Prompt), cw))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())
	b.WriteString("\n")

	btn := components.NewButton(s.nextLabel(), nil)
	_, selected := s.sess.Selected()
	btn.Disabled = !selected
	b.WriteString(btn.View())
	return b.String()
}

func (s *QuizScreen) renderResults(cw int) string {
	score, _ := s.sess.FinalScore()
	total := s.sess.QuestionCount()

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Quiz Completed!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You scored %d out of %d", score, total)))
	b.WriteString("\n\n")

	for _, a := range s.sess.Answers() {
		b.WriteString(s.renderReviewLine(a, cw))
		b.WriteString("\n")
	}

	if exp := s.renderExplanation(cw); exp != "" {
		b.WriteString("\n")
		b.WriteString(exp)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.NewButton("Return to Quiz Home", nil).View())
	return b.String()
}

func (s *QuizScreen) renderReviewLine(a qz.Answer, cw int) string {
	q, _ := s.sess.Question(a.QuestionIndex)

	cursor := "  "
	if a.QuestionIndex == s.review {
		cursor = "▸ "
	}
	mark, style := "✗", theme.Incorrect
	if a.IsCorrect {
		mark, style = "✓", theme.Correct
	}

	line := style.Render(fmt.Sprintf("%s%s %d. %s", cursor, mark, a.QuestionIndex+1, q.Prompt))
	detail := fmt.Sprintf("       Your answer: %s) %s", components.OptionLabel(a.Selected), q.Options[a.Selected])
	if !a.IsCorrect {
		detail += fmt.Sprintf("\n       Correct answer: %s) %s", components.OptionLabel(a.Correct), q.Options[a.Correct])
	}
	return components.Wrap(line, cw) + "\n" + theme.Hint.Render(detail)
}

func (s *QuizScreen) renderExplanation(cw int) string {
	i := s.review
	switch {
	case s.explaining == i:
		return theme.Hint.Render(fmt.Sprintf("Asking the tutor about question %d...", i+1))
	case s.explainErrs[i] != "":
		return theme.Warn.Render(s.explainErrs[i])
	}
	exp := s.explanations[i]
	if exp == nil {
		return ""
	}
	return components.Card(formatExplanation(i, exp, cw-4), cw)
}

func formatExplanation(i int, exp *tutor.Explanation, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	text := lipgloss.NewStyle().Width(width).Foreground(theme.Text)

	parts := []string{
		label.Render(fmt.Sprintf("Question %d explained", i+1)),
		text.Render(exp.Summary),
		label.Render("Why the answer is correct"),
		text.Render(exp.WhyCorrect),
	}
	if exp.WhyChosenIsWrong != "" {
		parts = append(parts, label.Render("Why your choice is wrong"), text.Render(exp.WhyChosenIsWrong))
	}
	parts = append(parts, label.Render("Key concept"), text.Render(exp.KeyConcept))
	return strings.Join(parts, "\n")
}
