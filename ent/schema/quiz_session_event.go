package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizSessionEvent records quiz lifecycle events: one start and at most one
// complete or abandon per session.
type QuizSessionEvent struct {
	ent.Schema
}

func (QuizSessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizSessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events of one attempt"),
		field.String("action").
			NotEmpty().
			Comment("start, complete or abandon"),
		field.Int("question_count").
			Default(0),
		field.Int("score").
			Default(0).
			Comment("Correct answers so far (on complete and abandon)"),
		field.Int64("duration_ms").
			Default(0).
			Comment("Time since start (on complete and abandon)"),
	}
}

func (QuizSessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
