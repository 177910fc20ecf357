package quiz

import (
	"errors"

	"github.com/abhisek/stratiz/internal/content"
)

// State is the externally visible phase of a quiz session.
type State int

const (
	StateIdle       State = iota // not started
	StateInProgress              // answering questions
	StateCompleted               // every question finalized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// NoSelection is the value Selected reports when no option is chosen.
const NoSelection = -1

// Answer records a finalized question.
type Answer struct {
	QuestionIndex int
	Selected      int
	Correct       int
	IsCorrect     bool
}

// Step is the outcome of a successful Advance.
type Step struct {
	Answer    Answer
	Completed bool
}

// Session tracks a learner's progress through a fixed, ordered list of
// questions. It is not safe for concurrent use; the view that owns it
// serializes calls.
type Session struct {
	questions []content.Question

	started      bool
	currentIndex int
	selected     int
	score        int
	finished     bool
	answers      []Answer
}

// NewSession creates an idle session over questions.
func NewSession(questions []content.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, errors.New("quiz needs at least one question")
	}
	qs := make([]content.Question, len(questions))
	copy(qs, questions)
	return &Session{questions: qs, selected: NoSelection}, nil
}

// State derives the current phase from the session flags.
func (s *Session) State() State {
	switch {
	case !s.started:
		return StateIdle
	case s.finished:
		return StateCompleted
	default:
		return StateInProgress
	}
}

// Start begins a fresh session from any state.
func (s *Session) Start() {
	s.started = true
	s.currentIndex = 0
	s.selected = NoSelection
	s.score = 0
	s.finished = false
	s.answers = nil
}

// Reset drops the session back to the idle screen.
func (s *Session) Reset() {
	s.Start()
	s.started = false
}

// SelectOption records a tentative choice for the current question,
// replacing any previous one.
func (s *Session) SelectOption(i int) error {
	if st := s.State(); st != StateInProgress {
		return &TransitionError{Action: "select option", From: st}
	}
	n := s.questions[s.currentIndex].OptionCount()
	if i < 0 || i >= n {
		return &OptionError{Index: i, OptionCount: n}
	}
	s.selected = i
	return nil
}

// Advance finalizes the current selection, scores it and moves to the next
// question or completes the session.
func (s *Session) Advance() (Step, error) {
	if st := s.State(); st != StateInProgress {
		return Step{}, &TransitionError{Action: "advance", From: st}
	}
	if s.selected == NoSelection {
		return Step{}, &TransitionError{Action: "advance", From: StateInProgress, Reason: "no option selected"}
	}

	q := s.questions[s.currentIndex]
	ans := Answer{
		QuestionIndex: s.currentIndex,
		Selected:      s.selected,
		Correct:       q.Correct,
		IsCorrect:     q.IsCorrect(s.selected),
	}
	if ans.IsCorrect {
		s.score++
	}
	s.answers = append(s.answers, ans)
	s.selected = NoSelection

	if s.currentIndex < len(s.questions)-1 {
		s.currentIndex++
		return Step{Answer: ans}, nil
	}
	s.finished = true
	return Step{Answer: ans, Completed: true}, nil
}

// CurrentQuestion returns the active question. Only valid while in progress.
func (s *Session) CurrentQuestion() (content.Question, error) {
	if st := s.State(); st != StateInProgress {
		return content.Question{}, &TransitionError{Action: "current question", From: st}
	}
	return s.questions[s.currentIndex], nil
}

// FinalScore returns the score of a completed session.
func (s *Session) FinalScore() (int, error) {
	if st := s.State(); st != StateCompleted {
		return 0, &TransitionError{Action: "final score", From: st}
	}
	return s.score, nil
}

// Selected returns the tentative choice and whether one exists.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected != NoSelection
}

func (s *Session) Score() int         { return s.score }
func (s *Session) CurrentIndex() int  { return s.currentIndex }
func (s *Session) QuestionCount() int { return len(s.questions) }

// IsLastQuestion reports whether the active question is the final one.
func (s *Session) IsLastQuestion() bool {
	return s.currentIndex == len(s.questions)-1
}

// Question returns the question at index i regardless of state, for review.
func (s *Session) Question(i int) (content.Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return content.Question{}, false
	}
	return s.questions[i], true
}

// Answers returns the finalized answers in order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}
