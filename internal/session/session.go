// Package session persists quiz sessions: lifecycle and answer events go to
// the event log, and each finished session is folded into the learner
// snapshot.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/quiz"
	"github.com/abhisek/stratiz/internal/store"
)

// SnapshotsKept is how many snapshots survive a prune after completion.
const SnapshotsKept = 20

// Recorder writes one quiz session at a time. A Recorder with nil repos
// records nothing and never fails, so callers need no special casing when
// persistence is off.
type Recorder struct {
	events store.EventRepo
	snaps  store.SnapshotRepo
	clock  func() time.Time

	id        string
	startedAt time.Time
	open      bool
}

// NewRecorder creates a recorder. Either repo may be nil.
func NewRecorder(events store.EventRepo, snaps store.SnapshotRepo) *Recorder {
	return &Recorder{
		events: events,
		snaps:  snaps,
		clock:  time.Now,
	}
}

// ID returns the current session id, or "" before Begin.
func (r *Recorder) ID() string { return r.id }

// Open reports whether a session has begun and not yet ended.
func (r *Recorder) Open() bool { return r.open }

// Begin starts a new session with a fresh id. A session still open is
// recorded as abandoned first.
func (r *Recorder) Begin(ctx context.Context, questionCount int) error {
	var errs []error
	if r.open {
		if err := r.Abandon(ctx, 0, questionCount); err != nil {
			errs = append(errs, err)
		}
	}

	r.id = uuid.New().String()
	r.startedAt = r.clock()
	r.open = true

	if r.events != nil {
		err := r.events.AppendQuizSession(ctx, store.QuizSessionEventData{
			SessionID:     r.id,
			Action:        store.ActionStart,
			QuestionCount: questionCount,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("record start: %w", err))
		}
	}
	if err := r.updateProgress(ctx, func(p *store.QuizProgress) { p.Attempts++ }); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Answer records one finalized answer of the open session.
func (r *Recorder) Answer(ctx context.Context, q content.Question, a quiz.Answer) error {
	if !r.open || r.events == nil {
		return nil
	}
	err := r.events.AppendQuizAnswer(ctx, store.QuizAnswerEventData{
		SessionID:      r.id,
		QuestionIndex:  a.QuestionIndex,
		Prompt:         q.Prompt,
		SelectedOption: a.Selected,
		CorrectOption:  a.Correct,
		Correct:        a.IsCorrect,
	})
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

// Complete closes the open session with its final score and updates the
// learner snapshot.
func (r *Recorder) Complete(ctx context.Context, score, questionCount int) error {
	if !r.open {
		return nil
	}
	var errs []error
	if err := r.end(ctx, store.ActionComplete, score, questionCount); err != nil {
		errs = append(errs, err)
	}
	at := r.clock().UTC()
	if err := r.updateProgress(ctx, func(p *store.QuizProgress) { p.Record(score, questionCount, at) }); err != nil {
		errs = append(errs, err)
	}
	if r.snaps != nil {
		if err := r.snaps.Prune(ctx, SnapshotsKept); err != nil {
			errs = append(errs, fmt.Errorf("prune snapshots: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Abandon closes the open session without completing it.
func (r *Recorder) Abandon(ctx context.Context, score, questionCount int) error {
	if !r.open {
		return nil
	}
	return r.end(ctx, store.ActionAbandon, score, questionCount)
}

func (r *Recorder) end(ctx context.Context, action string, score, questionCount int) error {
	r.open = false
	if r.events == nil {
		return nil
	}
	err := r.events.AppendQuizSession(ctx, store.QuizSessionEventData{
		SessionID:     r.id,
		Action:        action,
		QuestionCount: questionCount,
		Score:         score,
		DurationMs:    r.clock().Sub(r.startedAt).Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("record %s: %w", action, err)
	}
	return nil
}

func (r *Recorder) updateProgress(ctx context.Context, fn func(*store.QuizProgress)) error {
	if r.snaps == nil {
		return nil
	}
	p, err := Progress(ctx, r.snaps)
	if err != nil {
		return err
	}
	fn(p)
	snap := &store.Snapshot{
		Timestamp: r.clock().UTC(),
		Data:      store.SnapshotData{Version: 1, Quiz: p},
	}
	if err := r.snaps.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Progress returns the quiz progress from the latest snapshot. It never
// returns nil progress on success.
func Progress(ctx context.Context, snaps store.SnapshotRepo) (*store.QuizProgress, error) {
	if snaps == nil {
		return &store.QuizProgress{}, nil
	}
	snap, err := snaps.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil || snap.Data.Quiz == nil {
		return &store.QuizProgress{}, nil
	}
	p := *snap.Data.Quiz
	return &p, nil
}
