package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizAnswerEvent records one submitted answer. The prompt is copied so the
// history stays readable when the content pack changes.
type QuizAnswerEvent struct {
	ent.Schema
}

func (QuizAnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizAnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.Int("question_index"),
		field.Text("prompt"),
		field.Int("selected_option"),
		field.Int("correct_option"),
		field.Bool("correct"),
	}
}

func (QuizAnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
