package app

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/page"
	"github.com/abhisek/stratiz/internal/router"
	"github.com/abhisek/stratiz/internal/screen"
	"github.com/abhisek/stratiz/internal/screens/glossary"
	"github.com/abhisek/stratiz/internal/screens/home"
	"github.com/abhisek/stratiz/internal/screens/quiz"
	"github.com/abhisek/stratiz/internal/screens/reading"
	"github.com/abhisek/stratiz/internal/screens/welcome"
	"github.com/abhisek/stratiz/internal/store"
	"github.com/abhisek/stratiz/internal/tutor"
	"github.com/abhisek/stratiz/internal/ui/layout"
)

// DebugLogEnv names a file that receives the app's log output while the
// TUI owns the terminal.
const DebugLogEnv = "STRATIZ_DEBUG_LOG"

// Options configures the application.
type Options struct {
	Pack         *content.Pack
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
	Tutor        tutor.Explainer
	StartPage    page.Page
	SkipWelcome  bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	page   page.Page
	splash bool
	width  int
	height int
}

// newAppModel creates the root model, starting on the welcome screen unless
// opts.SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	if opts.Pack == nil {
		opts.Pack = content.Default()
	}
	if !opts.StartPage.Valid() {
		opts.StartPage = page.Home
	}

	m := AppModel{opts: opts, page: opts.StartPage}
	if opts.SkipWelcome {
		m.router = router.New(m.screenFor(opts.StartPage))
		return m
	}

	m.splash = true
	m.router = router.New(welcome.New(opts.Pack.Title(), func() screen.Screen {
		return m.screenFor(opts.StartPage)
	}))
	return m
}

// screenFor builds a fresh screen for p.
func (m AppModel) screenFor(p page.Page) screen.Screen {
	o := m.opts
	switch p {
	case page.Chapters:
		return reading.NewChapters(o.Pack)
	case page.Quiz:
		return quiz.New(o.Pack, o.EventRepo, o.SnapshotRepo, o.Tutor)
	case page.Summary:
		return reading.NewSummary(o.Pack)
	case page.Glossary:
		return glossary.New(o.Pack)
	default:
		return home.New(o.Pack, o.EventRepo, o.SnapshotRepo)
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

// navigate swaps the whole stack for the page's screen. Screens being
// dropped get a chance to settle their state first.
func (m AppModel) navigate(p page.Page) (AppModel, tea.Cmd) {
	if !p.Valid() {
		return m, nil
	}
	m.page = p
	return m, m.router.Reset(m.screenFor(p))
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.Capturer)
	return ok && c.CapturingInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case page.NavigateMsg:
		return m.navigate(msg.To)

	case router.ReplaceScreenMsg:
		m.splash = false

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.splash || m.capturing() {
			break
		}
		switch key := msg.String(); key {
		case "tab":
			return m.navigate(m.page.Next())
		case "shift+tab":
			return m.navigate(m.page.Prev())
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			// The quiz uses digits to pick options.
			if m.page == page.Quiz && m.router.Depth() == 1 {
				break
			}
			if p := page.Page(key[0] - '1'); p.Valid() {
				return m.navigate(p)
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the frame: header, sidebar beside the active screen,
// footer. The welcome screen gets the whole terminal.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}
	if m.splash {
		return m.router.View(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.opts.Pack.Title(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	pages := page.All()
	labels := make([]string, len(pages))
	for i, p := range pages {
		labels[i] = p.String()
	}
	sidebar := layout.RenderSidebar(labels, int(m.page), contentHeight)
	content := m.router.View(layout.BodyWidth(m.width), contentHeight)

	return layout.RenderFrame(header, layout.RenderBody(sidebar, content), footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next page"},
		{Key: "1-5", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if path := os.Getenv(DebugLogEnv); path != "" {
		f, err := tea.LogToFile(path, "stratiz")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
