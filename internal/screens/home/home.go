package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/page"
	"github.com/abhisek/stratiz/internal/router"
	"github.com/abhisek/stratiz/internal/screen"
	"github.com/abhisek/stratiz/internal/screens/history"
	"github.com/abhisek/stratiz/internal/session"
	"github.com/abhisek/stratiz/internal/store"
	"github.com/abhisek/stratiz/internal/ui/components"
	"github.com/abhisek/stratiz/internal/ui/layout"
	"github.com/abhisek/stratiz/internal/ui/theme"
)

const intro = "This app will help you learn about generic strategies in global " +
	"competition. Use the navigation menu to explore different sections of the content."

// HomeScreen is the landing page: introduction, learner stats and a menu
// into the other pages.
type HomeScreen struct {
	title    string
	menu     components.Menu
	progress *store.QuizProgress
	warning  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. Either repo may be nil; the history entry is
// disabled without an event repo.
func New(pack *content.Pack, eventRepo store.EventRepo, snapRepo store.SnapshotRepo) *HomeScreen {
	h := &HomeScreen{title: pack.Title()}

	if snapRepo != nil {
		p, err := session.Progress(context.Background(), snapRepo)
		if err != nil {
			h.warning = "could not load progress: " + err.Error()
		} else {
			h.progress = p
		}
	}

	items := []components.MenuItem{
		{Label: "Chapters", Hint: "Read through the main sections of the paper", Action: navigate(page.Chapters)},
		{Label: "Quiz", Hint: "Test your knowledge with interactive questions", Action: navigate(page.Quiz)},
		{Label: "Summary", Hint: "Get a quick overview of each section", Action: navigate(page.Summary)},
		{Label: "Glossary", Hint: "Look up definitions of key terms", Action: navigate(page.Glossary)},
		{Label: "History", Hint: "Review past quiz attempts", Disabled: eventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo, pack)}
			}
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func navigate(p page.Page) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return page.NavigateMsg{To: p} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Open"},
		{Key: "Tab", Description: "Next page"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections,
		theme.Heading.Render(fmt.Sprintf("Welcome to the %s Study App", h.title)),
		components.Wrap(theme.Body.Render(intro), cw),
	)

	if stats := h.renderStats(); stats != "" {
		sections = append(sections, components.Card(stats, cw))
	}

	sections = append(sections, h.menu.View())

	if h.warning != "" {
		sections = append(sections, theme.Warn.Render(h.warning))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (h *HomeScreen) renderStats() string {
	if h.progress == nil {
		return ""
	}
	p := h.progress
	if p.Attempts == 0 {
		return theme.Hint.Render("No quiz attempts yet. Take the quiz to track your progress.")
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	parts := []string{
		label.Render("Attempts ") + value.Render(fmt.Sprint(p.Attempts)),
		label.Render("Completed ") + value.Render(fmt.Sprint(p.Completed)),
	}
	if p.Completed > 0 {
		parts = append(parts,
			label.Render("Best ")+value.Render(fmt.Sprintf("%d/%d", p.BestScore, p.QuestionCount)),
			label.Render("Last ")+value.Render(fmt.Sprintf("%d/%d", p.LastScore, p.QuestionCount)),
		)
	}
	return strings.Join(parts, "   ")
}
