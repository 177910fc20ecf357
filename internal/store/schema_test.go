package store

import (
	"testing"

	"entgo.io/ent/schema/field"
)

func TestTableForLaysOutMixinFirst(t *testing.T) {
	want := []string{"id", "sequence", "timestamp", "session_id", "action", "question_count", "score", "duration_ms"}
	if len(quizSessionTable.Columns) != len(want) {
		t.Fatalf("got %d columns, want %d", len(quizSessionTable.Columns), len(want))
	}
	for i, c := range quizSessionTable.Columns {
		if c.Name != want[i] {
			t.Errorf("column %d = %q, want %q", i, c.Name, want[i])
		}
	}
	if len(quizSessionTable.PrimaryKey) != 1 || quizSessionTable.PrimaryKey[0].Name != "id" {
		t.Errorf("expected id primary key, got %+v", quizSessionTable.PrimaryKey)
	}
}

func TestTableForColumns(t *testing.T) {
	seq, ok := llmRequestTable.Column("sequence")
	if !ok || !seq.Unique || seq.Type != field.TypeInt64 {
		t.Errorf("sequence should be a unique int64, got %+v", seq)
	}
	ts, _ := llmRequestTable.Column("timestamp")
	if ts.Default != nil {
		t.Errorf("func defaults must not become column defaults, got %v", ts.Default)
	}
	body, _ := llmRequestTable.Column("request_body")
	if body.Size == 0 || body.Default != "" {
		t.Errorf("request_body should be text with empty default, got %+v", body)
	}
	data, _ := snapshotTable.Column("data")
	if data.Type != field.TypeJSON {
		t.Errorf("snapshot data should be JSON, got %v", data.Type)
	}
}

func TestTableForIndexNames(t *testing.T) {
	names := map[string]bool{}
	for _, idx := range quizAnswerTable.Indexes {
		names[idx.Name] = true
		if len(idx.Columns) == 0 {
			t.Errorf("index %s has no columns", idx.Name)
		}
	}
	for _, want := range []string{"quizanswerevent_timestamp", "quizanswerevent_session_id"} {
		if !names[want] {
			t.Errorf("missing index %s in %v", want, names)
		}
	}
}
