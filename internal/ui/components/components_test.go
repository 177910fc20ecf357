package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

type pressedMsg struct{ label string }

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("expected down to skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("expected up to skip disabled item, got %d", m.Selected)
	}
}

func TestMenuWrapsAround(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A"},
		{Label: "B"},
		{Label: "C", Disabled: true},
	})
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("expected up from the top to wrap to the last enabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 0 {
		t.Errorf("expected down from the last enabled item to wrap, got %d", m.Selected)
	}
	m, _ = m.Update(key("G"))
	if m.Selected != 1 {
		t.Errorf("expected G to select the last enabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key("g"))
	if m.Selected != 0 {
		t.Errorf("expected g to select the first item, got %d", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Go", Action: func() tea.Cmd {
			return func() tea.Msg { return pressedMsg{label: "Go"} }
		}},
	})
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command from enter")
	}
	if msg, ok := cmd().(pressedMsg); !ok || msg.label != "Go" {
		t.Errorf("unexpected msg %#v", cmd())
	}
}

func TestButtonDisabledIgnoresEnter(t *testing.T) {
	pressed := false
	b := NewButton("Next Question", func() tea.Cmd {
		pressed = true
		return nil
	})
	b.Disabled = true

	b.Update(key("enter"))
	if pressed {
		t.Error("disabled button should not fire")
	}

	b.Disabled = false
	b.Update(key("enter"))
	if !pressed {
		t.Error("enabled button should fire on enter")
	}
}

func TestOptionListDigitChooses(t *testing.T) {
	o := NewOptionList([]string{"one", "two", "three"})

	o, cmd := o.Update(key("2"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(OptionChosenMsg)
	if !ok || msg.Index != 1 {
		t.Fatalf("expected OptionChosenMsg{1}, got %#v", cmd())
	}
	if o.Cursor != 1 {
		t.Errorf("cursor should follow the digit, got %d", o.Cursor)
	}
	if o.Selected != -1 {
		t.Errorf("list must not select by itself, got %d", o.Selected)
	}
}

func TestOptionListOutOfRangeDigitIsReported(t *testing.T) {
	o := NewOptionList([]string{"one", "two"})
	o, cmd := o.Update(key("9"))
	msg, ok := cmd().(OptionChosenMsg)
	if !ok || msg.Index != 8 {
		t.Fatalf("expected OptionChosenMsg{8}, got %#v", cmd())
	}
	if o.Cursor != 0 {
		t.Errorf("cursor should not move, got %d", o.Cursor)
	}
}

func TestOptionListCursorAndSpace(t *testing.T) {
	o := NewOptionList([]string{"one", "two", "three"})
	o, _ = o.Update(key("down"))
	o, _ = o.Update(key("down"))
	o, _ = o.Update(key("down"))
	if o.Cursor != 2 {
		t.Fatalf("cursor should stop at last option, got %d", o.Cursor)
	}
	_, cmd := o.Update(key("space"))
	if msg, ok := cmd().(OptionChosenMsg); !ok || msg.Index != 2 {
		t.Errorf("expected OptionChosenMsg{2}, got %#v", cmd())
	}
}

func TestOptionListRevealIgnoresKeys(t *testing.T) {
	o := NewOptionList([]string{"one", "two"})
	o.Reveal = true
	if _, cmd := o.Update(key("1")); cmd != nil {
		t.Error("revealed list should ignore input")
	}
}

func TestOptionListViewMarksSelection(t *testing.T) {
	o := NewOptionList([]string{"Cost Leadership", "Differentiation"})
	o.Selected = 1
	v := o.View()
	if !strings.Contains(v, "(•) B) Differentiation") {
		t.Errorf("selected option not marked:\n%s", v)
	}
	if !strings.Contains(v, "( ) A) Cost Leadership") {
		t.Errorf("unselected option not rendered:\n%s", v)
	}
}

func TestOptionLabel(t *testing.T) {
	if OptionLabel(0) != "A" || OptionLabel(5) != "F" {
		t.Errorf("unexpected labels %q %q", OptionLabel(0), OptionLabel(5))
	}
	if OptionLabel(-1) != "?" {
		t.Errorf("expected ? for negative index")
	}
}

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 4, 0},
		{2, 4, 0.5},
		{5, 4, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.done, tt.total, 40)
		if got := p.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if v := NewProgressBar("Quiz", 1, 4, 40).View(); !strings.Contains(v, "1/4") {
		t.Errorf("expected counter in view: %q", v)
	}
}

func TestTextInputTyping(t *testing.T) {
	ti := NewTextInput("/ ", "filter", 40)
	ti, _ = ti.Update(key("a"))
	if ti.Value() != "" {
		t.Fatalf("blurred input should ignore keys, got %q", ti.Value())
	}

	ti.Focus()
	ti, _ = ti.Update(key("c"))
	ti, _ = ti.Update(key("o"))
	if ti.Value() != "co" {
		t.Errorf("expected %q, got %q", "co", ti.Value())
	}
	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("reset should clear, got %q", ti.Value())
	}
}
