// Package reading renders the long-form pages (chapters and summary) in a
// scrollable viewport.
package reading

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/screen"
	"github.com/abhisek/stratiz/internal/ui/components"
	"github.com/abhisek/stratiz/internal/ui/layout"
	"github.com/abhisek/stratiz/internal/ui/theme"
)

// block is one titled piece of text; paragraphs are separated by blank lines.
type block struct {
	title string
	body  []string
}

// ReadingScreen shows a list of titled blocks. n and p jump between them.
type ReadingScreen struct {
	title  string
	blocks []block

	vp      viewport.Model
	width   int
	anchors []int // first line of each block in the rendered content
}

var _ screen.Screen = (*ReadingScreen)(nil)
var _ screen.KeyHintProvider = (*ReadingScreen)(nil)

// NewChapters shows every section of the pack in full.
func NewChapters(pack *content.Pack) *ReadingScreen {
	sections := pack.Sections()
	blocks := make([]block, len(sections))
	for i, s := range sections {
		blocks[i] = block{title: s.Title, body: s.Paragraphs()}
	}
	return newScreen("Chapters", blocks)
}

// NewSummary shows the opening paragraph of every section.
func NewSummary(pack *content.Pack) *ReadingScreen {
	sections := pack.Sections()
	blocks := make([]block, len(sections))
	for i, s := range sections {
		blocks[i] = block{title: s.Title, body: []string{s.Summary()}}
	}
	return newScreen("Summary", blocks)
}

func newScreen(title string, blocks []block) *ReadingScreen {
	vp := viewport.New()
	vp.SoftWrap = false
	vp.KeyMap.Left.SetEnabled(false)
	vp.KeyMap.Right.SetEnabled(false)
	return &ReadingScreen{
		title:  title,
		blocks: blocks,
		vp:     vp,
	}
}

func (r *ReadingScreen) Init() tea.Cmd {
	return nil
}

func (r *ReadingScreen) Title() string {
	return r.title
}

func (r *ReadingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "n/p", Description: "Next/prev section"},
		{Key: "Tab", Description: "Next page"},
	}
}

func (r *ReadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "n":
			r.jump(1)
			return r, nil
		case "p":
			r.jump(-1)
			return r, nil
		case "g", "home":
			r.vp.GotoTop()
			return r, nil
		case "G", "end":
			r.vp.GotoBottom()
			return r, nil
		}
	}
	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

// jump moves to the start of the next (dir > 0) or previous block.
func (r *ReadingScreen) jump(dir int) {
	cur := r.vp.YOffset()
	if dir > 0 {
		for _, a := range r.anchors {
			if a > cur {
				r.vp.SetYOffset(a)
				return
			}
		}
		return
	}
	for i := len(r.anchors) - 1; i >= 0; i-- {
		if r.anchors[i] < cur {
			r.vp.SetYOffset(r.anchors[i])
			return
		}
	}
}

// Section returns the index of the block at the top of the viewport.
func (r *ReadingScreen) Section() int {
	cur := r.vp.YOffset()
	idx := 0
	for i, a := range r.anchors {
		if a <= cur {
			idx = i
		}
	}
	return idx
}

func (r *ReadingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	r.resize(cw, height-2)

	footer := theme.Hint.Render(fmt.Sprintf("%s %d of %d  ·  %3.0f%%",
		sectionNoun(r.title), r.Section()+1, len(r.blocks), r.vp.ScrollPercent()*100))

	return lipgloss.NewStyle().Padding(0, 2).Render(r.vp.View() + "\n\n" + footer)
}

func sectionNoun(title string) string {
	if title == "Summary" {
		return "Section"
	}
	return "Chapter"
}

// resize re-renders the content when the width changes; height changes only
// resize the viewport.
func (r *ReadingScreen) resize(width, height int) {
	if height < 1 {
		height = 1
	}
	r.vp.SetHeight(height)
	if width == r.width {
		return
	}
	r.width = width
	r.vp.SetWidth(width)

	text, anchors := render(r.blocks, width)
	r.anchors = anchors
	r.vp.SetContent(text)
}

func render(blocks []block, width int) (string, []int) {
	var lines []string
	anchors := make([]int, 0, len(blocks))
	para := lipgloss.NewStyle().Width(width).Foreground(theme.Text)

	for i, b := range blocks {
		if i > 0 {
			lines = append(lines, "")
		}
		anchors = append(anchors, len(lines))
		lines = append(lines, theme.Heading.Render(b.title), "")
		for j, p := range b.body {
			if j > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, strings.Split(para.Render(p), "\n")...)
		}
	}
	return strings.Join(lines, "\n"), anchors
}
