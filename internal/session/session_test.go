package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/quiz"
	"github.com/abhisek/stratiz/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func fakeClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

// playAll answers every question with option 1 and records each answer.
func playAll(t *testing.T, ctx context.Context, r *Recorder, s *quiz.Session) {
	t.Helper()
	for s.State() == quiz.StateInProgress {
		q, err := s.CurrentQuestion()
		require.NoError(t, err)
		require.NoError(t, s.SelectOption(1))
		step, err := s.Advance()
		require.NoError(t, err)
		require.NoError(t, r.Answer(ctx, q, step.Answer))
	}
}

func TestRecorderCompleteSession(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	pack := content.Default()

	r := NewRecorder(st.EventRepo(), st.SnapshotRepo())
	r.clock = fakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), time.Second)

	s, err := quiz.NewSession(pack.Questions())
	require.NoError(t, err)
	s.Start()
	require.NoError(t, r.Begin(ctx, s.QuestionCount()))
	assert.True(t, r.Open())
	assert.NotEmpty(t, r.ID())

	playAll(t, ctx, r, s)
	score, err := s.FinalScore()
	require.NoError(t, err)
	require.NoError(t, r.Complete(ctx, score, s.QuestionCount()))
	assert.False(t, r.Open())

	sums, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, r.ID(), sums[0].SessionID)
	assert.Equal(t, store.StatusCompleted, sums[0].Status)
	assert.Equal(t, score, sums[0].Score)
	assert.Equal(t, pack.QuestionCount(), sums[0].QuestionCount)
	assert.Positive(t, sums[0].DurationMs)

	answers, err := st.EventRepo().QueryAnswers(ctx, r.ID())
	require.NoError(t, err)
	require.Len(t, answers, pack.QuestionCount())
	correct := 0
	for i, a := range answers {
		assert.Equal(t, i, a.QuestionIndex)
		assert.Equal(t, 1, a.SelectedOption)
		if a.Correct {
			correct++
		}
	}
	assert.Equal(t, score, correct)

	p, err := Progress(ctx, st.SnapshotRepo())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Attempts)
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, score, p.LastScore)
	assert.Equal(t, score, p.BestScore)
	assert.Equal(t, pack.QuestionCount(), p.QuestionCount)
}

func TestRecorderBeginAbandonsOpenSession(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	r := NewRecorder(st.EventRepo(), st.SnapshotRepo())

	require.NoError(t, r.Begin(ctx, 4))
	first := r.ID()
	require.NoError(t, r.Begin(ctx, 4))
	assert.NotEqual(t, first, r.ID())

	sums, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 2)

	statuses := map[string]string{}
	for _, s := range sums {
		statuses[s.SessionID] = s.Status
	}
	assert.Equal(t, store.StatusAbandoned, statuses[first])
	assert.Equal(t, store.StatusInProgress, statuses[r.ID()])

	p, err := Progress(ctx, st.SnapshotRepo())
	require.NoError(t, err)
	assert.Equal(t, 2, p.Attempts)
	assert.Equal(t, 0, p.Completed)
}

func TestRecorderAbandonIsNoopWhenClosed(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	r := NewRecorder(st.EventRepo(), st.SnapshotRepo())

	require.NoError(t, r.Abandon(ctx, 0, 4))
	require.NoError(t, r.Complete(ctx, 0, 4))

	sums, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestRecorderBestScoreKept(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	r := NewRecorder(st.EventRepo(), st.SnapshotRepo())

	for _, score := range []int{3, 1} {
		require.NoError(t, r.Begin(ctx, 4))
		require.NoError(t, r.Complete(ctx, score, 4))
	}

	p, err := Progress(ctx, st.SnapshotRepo())
	require.NoError(t, err)
	assert.Equal(t, 3, p.BestScore)
	assert.Equal(t, 1, p.LastScore)
	assert.Equal(t, 2, p.Completed)
}

func TestRecorderWithoutRepos(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(nil, nil)
	q := content.Default().Questions()[0]

	require.NoError(t, r.Begin(ctx, 4))
	require.NoError(t, r.Answer(ctx, q, quiz.Answer{QuestionIndex: 0, Selected: 1, Correct: 1, IsCorrect: true}))
	require.NoError(t, r.Complete(ctx, 1, 4))

	p, err := Progress(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, store.QuizProgress{}, *p)
}

type failingEvents struct {
	store.EventRepo
}

var errDiskFull = errors.New("disk full")

func (failingEvents) AppendQuizSession(context.Context, store.QuizSessionEventData) error {
	return errDiskFull
}

func TestRecorderSurfacesErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder(failingEvents{}, nil)

	err := r.Begin(ctx, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
	assert.True(t, r.Open(), "session stays open so answers can still be played")

	err = r.Complete(ctx, 2, 4)
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, r.Open())
}
