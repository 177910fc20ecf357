package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo with ent's SQL builders.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = now()
	}

	q, args := builder().Insert(snapshotTable.Name).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, ts.UTC(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	q, args := builder().
		Select("id", "sequence", "timestamp", "data").
		From(entsql.Table(snapshotTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		s    Snapshot
		ts   time.Time
		data string
	)
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&s.ID, &s.Sequence, &ts, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &s.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	s.Timestamp = ts
	return &s, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	q, args := builder().
		Select("id").
		From(entsql.Table(snapshotTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	var stale []any
	for n := 0; rows.Next(); n++ {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan snapshot id: %w", err)
		}
		if n >= keep {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate snapshots: %w", err)
	}
	if len(stale) == 0 {
		return nil // fewer than keep snapshots exist
	}

	q, args = builder().Delete(snapshotTable.Name).
		Where(entsql.In("id", stale...)).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
