package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/llm"
)

func validExplanationJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "Porter's generic strategies are cost leadership, differentiation and focus.",
		"why_correct": "The first chapter lists these three as the original generic strategies.",
		"why_chosen_is_wrong": "Global cost leadership and global differentiation are later variations, not Porter's original set.",
		"key_concept": "Generic strategies"
	}`)
}

func firstQuestion(t *testing.T) content.Question {
	t.Helper()
	q, err := content.Default().Question(0)
	require.NoError(t, err)
	return q
}

func TestExplain_ParsesResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExplanationJSON()})
	svc := NewService(mock, content.Default(), DefaultConfig())

	exp, err := svc.Explain(context.Background(), firstQuestion(t), 0)
	require.NoError(t, err)
	assert.Equal(t, "Generic strategies", exp.KeyConcept)
	assert.NotEmpty(t, exp.WhyChosenIsWrong)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ExplanationSchema, calls[0].Schema)
	assert.Equal(t, DefaultConfig().MaxTokens, calls[0].MaxTokens)
}

func TestExplain_PromptQuotesQuestionAndPack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExplanationJSON()})
	pack := content.Default()
	svc := NewService(mock, pack, DefaultConfig())
	q := firstQuestion(t)

	_, err := svc.Explain(context.Background(), q, 0)
	require.NoError(t, err)

	msg := mock.Calls()[0].Messages[0].Content
	assert.Contains(t, msg, q.Prompt)
	assert.Contains(t, msg, "Correct answer: B) "+q.CorrectOption())
	assert.Contains(t, msg, "The student chose: A) "+q.Options[0])
	for _, term := range pack.Glossary() {
		assert.Contains(t, msg, term.Term)
	}
	for _, sec := range pack.Sections() {
		assert.Contains(t, msg, sec.Title)
	}
}

func TestExplain_CorrectSelectionClearsWrongReason(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validExplanationJSON()})
	svc := NewService(mock, nil, DefaultConfig())
	q := firstQuestion(t)

	exp, err := svc.Explain(context.Background(), q, q.Correct)
	require.NoError(t, err)
	assert.Empty(t, exp.WhyChosenIsWrong)

	msg := mock.Calls()[0].Messages[0].Content
	assert.Contains(t, msg, "The student chose the correct answer.")
	assert.False(t, strings.HasPrefix(msg, "Course:"))
}

func TestExplain_RejectsOutOfRangeSelection(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, content.Default(), DefaultConfig())

	for _, sel := range []int{-1, 4, 99} {
		_, err := svc.Explain(context.Background(), firstQuestion(t), sel)
		assert.Error(t, err, "selected=%d", sel)
	}
	assert.Empty(t, mock.Calls())
}

func TestExplain_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		kind error
	}{
		{"provider down", llm.MockResponse{Err: &llm.Error{Kind: llm.ErrUnavailable}}, llm.ErrUnavailable},
		{"missing fields", llm.MockResponse{Content: json.RawMessage(`{"summary":"x"}`)}, llm.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(llm.NewMockProvider(tt.resp), content.Default(), DefaultConfig())
			_, err := svc.Explain(context.Background(), firstQuestion(t), 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "err = %v", err)
		})
	}
}

func TestExplain_LogsWithPurpose(t *testing.T) {
	var seen string
	p := purposeSpy{inner: llm.NewMockProvider(llm.MockResponse{Content: validExplanationJSON()}), seen: &seen}
	svc := NewService(p, content.Default(), DefaultConfig())

	_, err := svc.Explain(context.Background(), firstQuestion(t), 0)
	require.NoError(t, err)
	assert.Equal(t, Purpose, seen)
}

type purposeSpy struct {
	inner llm.Provider
	seen  *string
}

func (p purposeSpy) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.seen = llm.PurposeFrom(ctx)
	return p.inner.Generate(ctx, req)
}

func (p purposeSpy) ModelID() string { return p.inner.ModelID() }
