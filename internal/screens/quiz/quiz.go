// Package quiz is the view layer over the quiz state machine. It owns one
// quiz.Session, persists its progress through a session.Recorder and, once
// the quiz is done, can ask the tutor to explain an answer.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stratiz/internal/content"
	qz "github.com/abhisek/stratiz/internal/quiz"
	"github.com/abhisek/stratiz/internal/screen"
	"github.com/abhisek/stratiz/internal/session"
	"github.com/abhisek/stratiz/internal/store"
	"github.com/abhisek/stratiz/internal/tutor"
	"github.com/abhisek/stratiz/internal/ui/components"
	"github.com/abhisek/stratiz/internal/ui/layout"
)

// ExplainTimeout bounds one tutor request.
const ExplainTimeout = 60 * time.Second

// QuizScreen implements screen.Screen for the Quiz page.
type QuizScreen struct {
	pack     *content.Pack
	sess     *qz.Session
	recorder *session.Recorder
	tutor    tutor.Explainer

	options components.OptionList
	notice  string // transient hint, cleared on the next key
	warning string // persistence failure, sticky for the session

	review       int // cursor in the completed view
	explanations map[int]*tutor.Explanation
	explainErrs  map[int]string
	explaining   int // question index in flight, or -1
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Leaver = (*QuizScreen)(nil)

// New creates an idle quiz screen. events, snaps and explainer may be nil.
func New(pack *content.Pack, events store.EventRepo, snaps store.SnapshotRepo, explainer tutor.Explainer) *QuizScreen {
	// Default and loaded packs always carry at least one question.
	sess, err := qz.NewSession(pack.Questions())
	if err != nil {
		panic(err)
	}
	return &QuizScreen{
		pack:     pack,
		sess:     sess,
		recorder: session.NewRecorder(events, snaps),
		tutor:    explainer,

		explanations: make(map[int]*tutor.Explanation),
		explainErrs:  make(map[int]string),
		explaining:   -1,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// State exposes the state machine phase.
func (s *QuizScreen) State() qz.State {
	return s.sess.State()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.sess.State() {
	case qz.StateInProgress:
		n := s.currentOptionCount()
		hint := fmt.Sprintf("1-%d", n)
		return []layout.KeyHint{
			{Key: hint, Description: "Choose"},
			{Key: "↑↓ Space", Description: "Move/choose"},
			{Key: "Enter", Description: s.nextLabel()},
			{Key: "Tab", Description: "Leave quiz"},
		}
	case qz.StateCompleted:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Return to Quiz Home"},
			{Key: "r", Description: "Retake"},
			{Key: "↑↓", Description: "Review"},
		}
		if s.tutor != nil {
			hints = append(hints, layout.KeyHint{Key: "e", Description: "Explain"})
		}
		return hints
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start Quiz"},
			{Key: "Tab", Description: "Next page"},
		}
	}
}

// Leave settles an unfinished quiz when the user navigates away: the session
// is recorded as abandoned and the screen drops back to idle.
func (s *QuizScreen) Leave() tea.Cmd {
	if s.sess.State() == qz.StateInProgress {
		err := s.recorder.Abandon(context.Background(), s.sess.Score(), s.sess.QuestionCount())
		if err != nil {
			log.Printf("quiz: record abandon: %v", err)
		}
	}
	s.sess.Reset()
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.OptionChosenMsg:
		s.choose(msg.Index)
		return s, nil

	case explainDoneMsg:
		s.explaining = -1
		if msg.Err != nil {
			s.explainErrs[msg.Index] = explainError(msg.Err)
		} else {
			s.explanations[msg.Index] = msg.Explanation
		}
		return s, nil

	case tea.KeyPressMsg:
		s.notice = ""
		switch s.sess.State() {
		case qz.StateIdle:
			return s.updateIdle(msg)
		case qz.StateInProgress:
			return s.updateInProgress(msg)
		case qz.StateCompleted:
			return s.updateCompleted(msg)
		}
	}
	return s, nil
}

func (s *QuizScreen) updateIdle(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "s":
		s.start()
	}
	return s, nil
}

func (s *QuizScreen) updateInProgress(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		s.advance()
		return s, nil
	}
	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return s, cmd
}

func (s *QuizScreen) updateCompleted(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.sess.Reset()
	case "r":
		s.start()
	case "up", "k":
		if s.review > 0 {
			s.review--
		}
	case "down", "j":
		if s.review < s.sess.QuestionCount()-1 {
			s.review++
		}
	case "e":
		return s, s.explain(s.review)
	}
	return s, nil
}

// start begins a fresh attempt from idle or completed.
func (s *QuizScreen) start() {
	s.sess.Start()
	s.warning = ""
	s.review = 0
	s.explanations = make(map[int]*tutor.Explanation)
	s.explainErrs = make(map[int]string)
	s.explaining = -1
	s.resetOptions()

	if err := s.recorder.Begin(context.Background(), s.sess.QuestionCount()); err != nil {
		s.persistFailed(err)
	}
}

func (s *QuizScreen) resetOptions() {
	q, err := s.sess.CurrentQuestion()
	if err != nil {
		return
	}
	s.options = components.NewOptionList(q.Options)
}

// choose forwards a pick to the state machine; the radio list only shows
// what the session accepted.
func (s *QuizScreen) choose(i int) {
	err := s.sess.SelectOption(i)
	switch {
	case errors.Is(err, qz.ErrInvalidOptionIndex):
		s.notice = fmt.Sprintf("Choose an option between 1 and %d.", s.currentOptionCount())
	case err != nil:
		// Picks arriving after the quiz moved on are dropped.
	default:
		s.options.Selected = i
		s.options.Cursor = i
	}
}

func (s *QuizScreen) advance() {
	q, _ := s.sess.CurrentQuestion()
	step, err := s.sess.Advance()
	if err != nil {
		if errors.Is(err, qz.ErrInvalidStateTransition) {
			s.notice = "Select an answer first."
		}
		return
	}

	ctx := context.Background()
	if err := s.recorder.Answer(ctx, q, step.Answer); err != nil {
		s.persistFailed(err)
	}
	if !step.Completed {
		s.resetOptions()
		return
	}

	score, _ := s.sess.FinalScore()
	if err := s.recorder.Complete(ctx, score, s.sess.QuestionCount()); err != nil {
		s.persistFailed(err)
	}
	s.review = firstMissed(s.sess.Answers())
}

func (s *QuizScreen) persistFailed(err error) {
	log.Printf("quiz: %v", err)
	s.warning = "Progress could not be saved: " + err.Error()
}

func (s *QuizScreen) explain(i int) tea.Cmd {
	if s.tutor == nil || s.explaining >= 0 {
		return nil
	}
	if _, done := s.explanations[i]; done {
		return nil
	}
	answers := s.sess.Answers()
	if i < 0 || i >= len(answers) {
		return nil
	}
	q, ok := s.sess.Question(i)
	if !ok {
		return nil
	}
	delete(s.explainErrs, i)
	s.explaining = i

	explainer := s.tutor
	selected := answers[i].Selected
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ExplainTimeout)
		defer cancel()
		exp, err := explainer.Explain(ctx, q, selected)
		return explainDoneMsg{Index: i, Explanation: exp, Err: err}
	}
}

func explainError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "The tutor took too long to answer. Press e to try again."
	}
	return "The tutor is unavailable: " + err.Error()
}

func (s *QuizScreen) currentOptionCount() int {
	q, err := s.sess.CurrentQuestion()
	if err != nil {
		return 0
	}
	return q.OptionCount()
}

func (s *QuizScreen) nextLabel() string {
	if s.sess.IsLastQuestion() {
		return "Finish Quiz"
	}
	return "Next Question"
}

// firstMissed returns the index of the first wrong answer, or 0.
func firstMissed(answers []qz.Answer) int {
	for _, a := range answers {
		if !a.IsCorrect {
			return a.QuestionIndex
		}
	}
	return 0
}
