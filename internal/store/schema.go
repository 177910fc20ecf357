package store

import (
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/stratiz/ent/schema"
)

// Table definitions for auto-migration, derived from the entity schemas in
// ent/schema. Every event table carries the EventMixin sequence/timestamp
// columns so events can be ordered globally.
var (
	quizSessionTable = tableFor("quiz_session_events", entschema.QuizSessionEvent{})
	quizAnswerTable  = tableFor("quiz_answer_events", entschema.QuizAnswerEvent{})
	llmRequestTable  = tableFor("llm_request_events", entschema.LLMRequestEvent{})
	snapshotTable    = tableFor("snapshots", entschema.Snapshot{})

	tables = []*schema.Table{
		quizSessionTable,
		quizAnswerTable,
		llmRequestTable,
		snapshotTable,
	}
)

// tableFor builds a table the way entc lays one out: an auto-increment id,
// mixin fields, then the entity's own fields. Index names follow entc's
// <entity>_<fields> convention.
func tableFor(name string, s ent.Interface) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		t.AddColumn(column(f.Descriptor()))
	}

	entity := strings.ToLower(reflect.TypeOf(s).Name())
	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(entity+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t
}

func column(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Unique:   d.Unique,
		Nullable: d.Optional,
		Size:     int64(d.Size),
	}
	if d.StorageKey != "" {
		c.Name = d.StorageKey
	}
	// Func defaults (time.Now) are applied by the writer, not the column.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}
