package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stratiz/internal/ui/theme"
)

// OptionChosenMsg reports that the user picked an option from an OptionList.
// The list does not mark it selected by itself; the owner decides.
type OptionChosenMsg struct {
	Index int
}

// OptionList renders answer options as a radio list. Options can be picked
// with the number keys or by moving the cursor and pressing space.
type OptionList struct {
	Options  []string
	Cursor   int
	Selected int // -1 when nothing is selected

	// Reveal colours the options once the answer is known.
	Reveal  bool
	Correct int
}

// NewOptionList creates an option list with nothing selected.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options:  options,
		Selected: -1,
		Correct:  -1,
	}
}

// OptionLabel returns the letter shown next to option i ("A", "B", ...).
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// Update handles cursor movement and picking.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Reveal {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return o, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
		return o, nil
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
		return o, nil
	case "space", " ":
		return o, choose(o.Cursor)
	}

	if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
		idx := n - 1
		if idx >= 0 && idx < len(o.Options) {
			o.Cursor = idx
		}
		// Out-of-range digits are still reported so the owner can reject them.
		return o, choose(idx)
	}
	return o, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return OptionChosenMsg{Index: i} }
}

// View renders the option list.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		cursor := "  "
		if i == o.Cursor && !o.Reveal {
			cursor = "▸ "
		}
		radio := "( )"
		if i == o.Selected {
			radio = "(•)"
		}
		line := fmt.Sprintf("%s%s %s) %s", cursor, radio, OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case o.Reveal && i == o.Correct:
			style = theme.Correct
		case o.Reveal && i == o.Selected:
			style = theme.Incorrect
		case o.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Selected:
			style = theme.Selected
		case i == o.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
