package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/router"
	"github.com/abhisek/stratiz/internal/store"
)

type fakeRepo struct {
	store.EventRepo
	sessions      []store.SessionSummaryRecord
	answers       map[string][]store.AnswerRecord
	answerQueries int
}

func (f *fakeRepo) QuerySessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return f.sessions, nil
}

func (f *fakeRepo) QueryAnswers(_ context.Context, id string) ([]store.AnswerRecord, error) {
	f.answerQueries++
	return f.answers[id], nil
}

func newLoaded(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo, content.Default())
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("expected screen to be loaded")
	}
	return s
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestEmptyHistory(t *testing.T) {
	s := newLoaded(t, &fakeRepo{})
	if v := s.View(80, 20); !strings.Contains(v, "No quiz attempts yet") {
		t.Errorf("expected empty message, got:\n%s", v)
	}
}

func TestExpandLoadsAnswersOnce(t *testing.T) {
	q := content.Default().Questions()[0]
	repo := &fakeRepo{
		sessions: []store.SessionSummaryRecord{{
			SessionID:     "s1",
			StartedAt:     time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
			Status:        store.StatusCompleted,
			QuestionCount: 4,
			Score:         3,
			DurationMs:    65_000,
		}},
		answers: map[string][]store.AnswerRecord{
			"s1": {{SessionID: "s1", QuestionIndex: 0, Prompt: q.Prompt, SelectedOption: 0, CorrectOption: q.Correct}},
		},
	}
	s := newLoaded(t, repo)

	if v := s.View(100, 20); !strings.Contains(v, "scored 3/4") || !strings.Contains(v, "1:05") {
		t.Errorf("expected score and duration in view:\n%s", v)
	}

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected answers to load on first expand")
	}
	s.Update(cmd())

	v := s.View(200, 20)
	if !strings.Contains(v, q.Prompt) {
		t.Errorf("expected prompt in expanded view:\n%s", v)
	}
	if !strings.Contains(v, "A) "+q.Options[0]) {
		t.Errorf("expected chosen option text in expanded view:\n%s", v)
	}
	if !strings.Contains(v, "correct was B") {
		t.Errorf("expected correct option in expanded view:\n%s", v)
	}

	// Collapse and expand again: no second query.
	s.Update(enter())
	if _, cmd := s.Update(enter()); cmd != nil {
		t.Error("answers should be cached after the first load")
	}
	if repo.answerQueries != 1 {
		t.Errorf("expected one answer query, got %d", repo.answerQueries)
	}
}

func TestEscPops(t *testing.T) {
	s := newLoaded(t, &fakeRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestFormatSession(t *testing.T) {
	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.Local)
	tests := []struct {
		sess store.SessionSummaryRecord
		want string
	}{
		{store.SessionSummaryRecord{StartedAt: start, Status: store.StatusCompleted, Score: 2, QuestionCount: 4, DurationMs: 125_000}, "2:05  scored 2/4"},
		{store.SessionSummaryRecord{StartedAt: start, Status: store.StatusAbandoned, DurationMs: 9_000}, "0:09  abandoned"},
		{store.SessionSummaryRecord{StartedAt: start, Status: store.StatusInProgress}, "in progress"},
	}
	for _, tt := range tests {
		got := FormatSession(tt.sess)
		if !strings.HasPrefix(got, "May 04, 2026 10:00") || !strings.HasSuffix(got, tt.want) {
			t.Errorf("FormatSession(%s) = %q, want suffix %q", tt.sess.Status, got, tt.want)
		}
	}
}
