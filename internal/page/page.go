// Package page defines the closed set of top-level pages in the app.
package page

import (
	"fmt"
	"strings"
)

// Page identifies a top-level page. The set is closed: every switch over
// Page must handle all values returned by All.
type Page int

const (
	Home Page = iota
	Chapters
	Quiz
	Summary
	Glossary

	count = iota
)

var names = [count]string{"Home", "Chapters", "Quiz", "Summary", "Glossary"}

// All returns every page in navigation order.
func All() []Page {
	out := make([]Page, count)
	for i := range out {
		out[i] = Page(i)
	}
	return out
}

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	return p >= 0 && p < count
}

func (p Page) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Page(%d)", int(p))
	}
	return names[p]
}

// Next returns the following page, wrapping around.
func (p Page) Next() Page {
	return Page((int(p) + 1) % count)
}

// Prev returns the preceding page, wrapping around.
func (p Page) Prev() Page {
	return Page((int(p) + count - 1) % count)
}

// Parse resolves a page by case-insensitive name.
func Parse(s string) (Page, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return Page(i), nil
		}
	}
	return Home, fmt.Errorf("unknown page %q (want one of %s)", s, strings.Join(names[:], ", "))
}

// NavigateMsg asks the app to switch to another page.
type NavigateMsg struct {
	To Page
}
