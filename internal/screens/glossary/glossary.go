package glossary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/screen"
	"github.com/abhisek/stratiz/internal/ui/components"
	"github.com/abhisek/stratiz/internal/ui/layout"
	"github.com/abhisek/stratiz/internal/ui/theme"
)

// GlossaryScreen lists the glossary terms. "/" opens a filter; Enter keeps
// the filter and Esc clears it.
type GlossaryScreen struct {
	pack    *content.Pack
	filter  components.TextInput
	terms   []content.Term
	offset  int
	visible int
}

var _ screen.Screen = (*GlossaryScreen)(nil)
var _ screen.KeyHintProvider = (*GlossaryScreen)(nil)
var _ screen.Capturer = (*GlossaryScreen)(nil)

// New creates a glossary screen over the pack's terms.
func New(pack *content.Pack) *GlossaryScreen {
	return &GlossaryScreen{
		pack:   pack,
		filter: components.NewTextInput("/ ", "filter terms", 40),
		terms:  pack.Glossary(),
	}
}

func (g *GlossaryScreen) Init() tea.Cmd {
	return nil
}

func (g *GlossaryScreen) Title() string {
	return "Glossary"
}

// CapturingInput reports whether the filter has focus.
func (g *GlossaryScreen) CapturingInput() bool {
	return g.filter.Focused()
}

func (g *GlossaryScreen) KeyHints() []layout.KeyHint {
	if g.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Tab", Description: "Next page"},
	}
}

// Terms returns the terms currently shown.
func (g *GlossaryScreen) Terms() []content.Term {
	return g.terms
}

// Query returns the active filter text.
func (g *GlossaryScreen) Query() string {
	return g.filter.Value()
}

func (g *GlossaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyPressMsg)

	if g.filter.Focused() {
		if isKey {
			switch kmsg.String() {
			case "enter":
				g.filter.Blur()
				return g, nil
			case "esc":
				g.filter.Reset()
				g.filter.Blur()
				g.apply()
				return g, nil
			}
		}
		var cmd tea.Cmd
		g.filter, cmd = g.filter.Update(msg)
		g.apply()
		return g, cmd
	}

	if !isKey {
		return g, nil
	}
	switch kmsg.String() {
	case "/":
		return g, g.filter.Focus()
	case "up", "k":
		if g.offset > 0 {
			g.offset--
		}
	case "down", "j":
		if g.offset < len(g.terms)-1 {
			g.offset++
		}
	}
	return g, nil
}

func (g *GlossaryScreen) apply() {
	g.terms = g.pack.SearchGlossary(g.filter.Value())
	g.offset = 0
}

func (g *GlossaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	if g.filter.Focused() || g.filter.Value() != "" {
		b.WriteString(g.filter.View())
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d", len(g.terms), len(g.pack.Glossary()))))
		b.WriteString("\n\n")
	}

	if len(g.terms) == 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("No terms match %q.", g.filter.Value())))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	used := lipgloss.Height(b.String())
	def := lipgloss.NewStyle().Width(cw - 2).Foreground(theme.Text)
	for i := g.offset; i < len(g.terms); i++ {
		entry := theme.Heading.Render(g.terms[i].Term) + "\n" +
			lipgloss.NewStyle().PaddingLeft(2).Render(def.Render(g.terms[i].Definition)) + "\n\n"
		h := lipgloss.Height(entry)
		if i > g.offset && used+h > height-2 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("… %d more", len(g.terms)-i)))
			break
		}
		b.WriteString(entry)
		used += h
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
