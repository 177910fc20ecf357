package glossary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stratiz/internal/content"
)

func typeText(g *GlossaryScreen, s string) {
	for _, r := range s {
		g.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestShowsAllTerms(t *testing.T) {
	pack := content.Default()
	g := New(pack)
	v := g.View(120, 200)
	for _, term := range pack.Glossary() {
		if !strings.Contains(v, term.Term) {
			t.Errorf("glossary view missing %q", term.Term)
		}
	}
	if g.CapturingInput() {
		t.Error("filter should start blurred")
	}
}

func TestFilterNarrowsTerms(t *testing.T) {
	pack := content.Default()
	g := New(pack)

	typeText(g, "/")
	if !g.CapturingInput() {
		t.Fatal("expected / to focus the filter")
	}
	typeText(g, "home base")

	want := pack.SearchGlossary("home base")
	if len(g.Terms()) != len(want) {
		t.Fatalf("expected %d terms, got %d", len(want), len(g.Terms()))
	}
	if len(want) == 0 || len(want) == len(pack.Glossary()) {
		t.Fatalf("test query should narrow the glossary, got %d matches", len(want))
	}

	g.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if g.CapturingInput() {
		t.Error("enter should blur the filter")
	}
	if g.Query() != "home base" {
		t.Errorf("enter should keep the query, got %q", g.Query())
	}
	if !strings.Contains(g.View(120, 200), "of 6") {
		t.Errorf("expected match counter in view")
	}
}

func TestEscClearsFilter(t *testing.T) {
	pack := content.Default()
	g := New(pack)
	typeText(g, "/zzz")
	if len(g.Terms()) != 0 {
		t.Fatalf("expected no matches, got %d", len(g.Terms()))
	}
	if !strings.Contains(g.View(120, 40), `No terms match "zzz"`) {
		t.Error("expected empty-result message")
	}

	g.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if g.CapturingInput() {
		t.Error("esc should blur the filter")
	}
	if g.Query() != "" || len(g.Terms()) != len(pack.Glossary()) {
		t.Errorf("esc should clear the filter, got %q with %d terms", g.Query(), len(g.Terms()))
	}
}

func TestScrollStopsAtLastTerm(t *testing.T) {
	g := New(content.Default())
	for i := 0; i < 20; i++ {
		g.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if g.offset != len(g.Terms())-1 {
		t.Errorf("expected offset %d, got %d", len(g.Terms())-1, g.offset)
	}
}
