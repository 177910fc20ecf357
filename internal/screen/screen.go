package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stratiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens holding state that must be settled when
// the user navigates away, such as an unfinished quiz.
type Leaver interface {
	Leave() tea.Cmd
}

// Capturer is implemented by screens that sometimes need every key, for
// example while a text input has focus. The app skips its global
// shortcuts while CapturingInput reports true.
type Capturer interface {
	CapturingInput() bool
}
