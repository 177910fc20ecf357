package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stratiz/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

type leavingScreen struct {
	stubScreen
	left int
}

type leftMsg struct{ title string }

func (s *leavingScreen) Leave() tea.Cmd {
	s.left++
	title := s.title
	return func() tea.Msg { return leftMsg{title: title} }
}

func TestPopCallsLeave(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	top := &leavingScreen{stubScreen: stubScreen{title: "quiz"}}
	r.Push(top)

	cmd := r.Pop()
	if top.left != 1 {
		t.Fatalf("expected Leave() once, got %d", top.left)
	}
	if cmd == nil {
		t.Fatal("expected the Leave() command to be returned")
	}
	if msg, ok := cmd().(leftMsg); !ok || msg.title != "quiz" {
		t.Errorf("expected leftMsg for quiz, got %#v", cmd())
	}
}

func TestReset(t *testing.T) {
	bottom := &leavingScreen{stubScreen: stubScreen{title: "bottom"}}
	r := New(bottom)
	r.Push(&stubScreen{title: "middle"})
	top := &leavingScreen{stubScreen: stubScreen{title: "top"}}
	r.Push(top)

	fresh := &stubScreen{title: "fresh"}
	r.Reset(fresh)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after reset, got %d", r.Depth())
	}
	if r.Active().Title() != "fresh" {
		t.Errorf("expected active 'fresh', got %q", r.Active().Title())
	}
	if !fresh.initRan {
		t.Error("expected Init() to run on reset screen")
	}
	if bottom.left != 1 || top.left != 1 {
		t.Errorf("expected every leaver to be left once, got bottom=%d top=%d", bottom.left, top.left)
	}
}

func TestReplaceCallsLeave(t *testing.T) {
	old := &leavingScreen{stubScreen: stubScreen{title: "old"}}
	r := New(old)
	r.Replace(&stubScreen{title: "new"})

	if old.left != 1 {
		t.Errorf("expected Leave() on replaced screen, got %d", old.left)
	}
}
