package quiz

import (
	"github.com/abhisek/stratiz/internal/tutor"
)

// explainDoneMsg carries the tutor's answer for one reviewed question.
type explainDoneMsg struct {
	Index       int
	Explanation *tutor.Explanation
	Err         error
}
