package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/router"
	"github.com/abhisek/stratiz/internal/screen"
	"github.com/abhisek/stratiz/internal/store"
	"github.com/abhisek/stratiz/internal/ui/components"
	"github.com/abhisek/stratiz/internal/ui/layout"
	"github.com/abhisek/stratiz/internal/ui/theme"
)

// SessionLimit caps how many sessions the screen loads.
const SessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen lists past quiz sessions. Enter expands a session to show
// its answers, which are loaded on first expansion.
type HistoryScreen struct {
	eventRepo store.EventRepo
	pack      *content.Pack
	sessions  []store.SessionSummaryRecord
	answers   map[string][]store.AnswerRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. pack is used to show option text and may
// be nil.
func New(eventRepo store.EventRepo, pack *content.Pack) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		pack:      pack,
		answers:   make(map[string][]store.AnswerRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: SessionLimit})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswers(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.answers[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAnswers(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quiz attempts yet. Take the quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(statusColor(sess.Status))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(prefix + FormatSession(sess)))
		b.WriteString("\n")

		if !s.expanded[i] {
			continue
		}
		answers, ok := s.answers[sess.SessionID]
		switch {
		case !ok:
			b.WriteString(theme.Hint.Render("      loading answers..."))
			b.WriteString("\n")
		case len(answers) == 0:
			b.WriteString(theme.Hint.Render("      No answers recorded"))
			b.WriteString("\n")
		default:
			for _, a := range answers {
				b.WriteString(s.renderAnswer(a, width))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswer(a store.AnswerRecord, width int) string {
	mark, style := "✗", theme.Incorrect
	if a.Correct {
		mark, style = "✓", theme.Correct
	}
	line := fmt.Sprintf("      %s Q%d  %s", mark, a.QuestionIndex+1, a.Prompt)

	chosen := components.OptionLabel(a.SelectedOption)
	if q, ok := s.question(a); ok && a.SelectedOption < len(q.Options) {
		chosen += ") " + q.Options[a.SelectedOption]
	}
	detail := "          you chose " + chosen
	if !a.Correct {
		detail += ", correct was " + components.OptionLabel(a.CorrectOption)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(style.Render(line)) + "\n" +
		lipgloss.NewStyle().MaxWidth(width).Render(theme.Hint.Render(detail))
}

// question finds the pack question an answer refers to. It only matches when
// the prompt is unchanged, since a custom pack may have been in use.
func (s *HistoryScreen) question(a store.AnswerRecord) (content.Question, bool) {
	if s.pack == nil || a.SelectedOption < 0 {
		return content.Question{}, false
	}
	q, err := s.pack.Question(a.QuestionIndex)
	if err != nil || q.Prompt != a.Prompt {
		return content.Question{}, false
	}
	return q, true
}

// FormatSession renders one session summary as a single line.
func FormatSession(sess store.SessionSummaryRecord) string {
	date := sess.StartedAt.Local().Format("Jan 02, 2006 15:04")
	secs := sess.DurationMs / 1000
	duration := fmt.Sprintf("%d:%02d", secs/60, secs%60)

	switch sess.Status {
	case store.StatusCompleted:
		return fmt.Sprintf("%s  %s  scored %d/%d", date, duration, sess.Score, sess.QuestionCount)
	case store.StatusAbandoned:
		return fmt.Sprintf("%s  %s  abandoned", date, duration)
	default:
		return fmt.Sprintf("%s  in progress", date)
	}
}

func statusColor(status string) color.Color {
	switch status {
	case store.StatusCompleted:
		return theme.Text
	case store.StatusAbandoned:
		return theme.TextDim
	default:
		return theme.Secondary
	}
}
