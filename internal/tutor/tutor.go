// Package tutor asks a language model to explain quiz answers.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/llm"
)

// Purpose labels tutor calls in the LLM request log.
const Purpose = "explain"

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the app.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.3,
	}
}

// Explanation is the tutor's feedback on one answered question.
type Explanation struct {
	Summary          string `json:"summary"`
	WhyCorrect       string `json:"why_correct"`
	WhyChosenIsWrong string `json:"why_chosen_is_wrong"`
	KeyConcept       string `json:"key_concept"`
}

// Explainer is implemented by Service. Screens depend on it so tests can
// substitute a stub.
type Explainer interface {
	Explain(ctx context.Context, q content.Question, selected int) (*Explanation, error)
}

// Service generates explanations grounded in a content pack.
type Service struct {
	provider llm.Provider
	pack     *content.Pack
	cfg      Config
}

// NewService creates a tutor backed by provider. pack supplies the
// glossary and chapter summaries quoted in the prompt.
func NewService(provider llm.Provider, pack *content.Pack, cfg Config) *Service {
	return &Service{provider: provider, pack: pack, cfg: cfg}
}

// Explain returns why the correct option of q is right and, when selected
// differs, why selected is wrong.
func (s *Service) Explain(ctx context.Context, q content.Question, selected int) (*Explanation, error) {
	if selected < 0 || selected >= q.OptionCount() {
		return nil, fmt.Errorf("explain: selected option %d out of range [0, %d)", selected, q.OptionCount())
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(s.pack, q, selected)}},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	if q.IsCorrect(selected) {
		out.WhyChosenIsWrong = ""
	}
	return &out, nil
}
