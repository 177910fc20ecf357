package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendQuizSession(ctx context.Context, data QuizSessionEventData) error {
	switch data.Action {
	case ActionStart, ActionComplete, ActionAbandon:
	default:
		return fmt.Errorf("append quiz session: unknown action %q", data.Action)
	}
	err := r.insert(ctx, quizSessionTable.Name,
		[]string{"session_id", "action", "question_count", "score", "duration_ms"},
		[]any{data.SessionID, data.Action, data.QuestionCount, data.Score, data.DurationMs},
	)
	if err != nil {
		return fmt.Errorf("save quiz session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendQuizAnswer(ctx context.Context, data QuizAnswerEventData) error {
	err := r.insert(ctx, quizAnswerTable.Name,
		[]string{"session_id", "question_index", "prompt", "selected_option", "correct_option", "correct"},
		[]any{data.SessionID, data.QuestionIndex, data.Prompt, data.SelectedOption, data.CorrectOption, data.Correct},
	)
	if err != nil {
		return fmt.Errorf("save quiz answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	// Fold every event in the window, then apply the limit per session.
	window := opts
	window.Limit = 0
	sel := builder().
		Select("session_id", "action", "timestamp", "question_count", "score", "duration_ms").
		From(entsql.Table(quizSessionTable.Name)).
		OrderBy("sequence")
	q, args := applyOpts(sel, window).Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz sessions: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*SessionSummaryRecord)
	for rows.Next() {
		var (
			id, action   string
			ts           time.Time
			count, score int
			durationMs   int64
		)
		if err := rows.Scan(&id, &action, &ts, &count, &score, &durationMs); err != nil {
			return nil, fmt.Errorf("scan quiz session: %w", err)
		}

		rec, ok := byID[id]
		if !ok {
			rec = &SessionSummaryRecord{SessionID: id, Status: StatusInProgress}
			byID[id] = rec
		}
		switch action {
		case ActionStart:
			rec.StartedAt = ts
			rec.QuestionCount = count
		case ActionComplete:
			rec.Status = StatusCompleted
			rec.EndedAt = ts
			rec.Score = score
			rec.DurationMs = durationMs
		case ActionAbandon:
			rec.Status = StatusAbandoned
			rec.EndedAt = ts
			rec.Score = score
			rec.DurationMs = durationMs
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz sessions: %w", err)
	}

	out := make([]SessionSummaryRecord, 0, len(byID))
	for _, rec := range byID {
		if rec.StartedAt.IsZero() {
			rec.StartedAt = rec.EndedAt
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].SessionID > out[j].SessionID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	q, args := builder().
		Select("sequence", "timestamp", "session_id", "question_index", "prompt",
			"selected_option", "correct_option", "correct").
		From(entsql.Table(quizAnswerTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("question_index", "sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &a.QuestionIndex,
			&a.Prompt, &a.SelectedOption, &a.CorrectOption, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan quiz answer: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz answers: %w", err)
	}
	return out, nil
}
