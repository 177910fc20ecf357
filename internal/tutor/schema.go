package tutor

import "github.com/abhisek/stratiz/internal/llm"

// ExplanationSchema defines the JSON the model must return.
var ExplanationSchema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "Feedback on a multiple-choice answer about global strategy",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One sentence stating the correct answer",
			},
			"why_correct": map[string]any{
				"type":        "string",
				"description": "2-3 sentences on why the correct option is right",
			},
			"why_chosen_is_wrong": map[string]any{
				"type":        "string",
				"description": "1-2 sentences on the flaw in the chosen option; empty if it was correct",
			},
			"key_concept": map[string]any{
				"type":        "string",
				"description": "The glossary term or idea to review (2-6 words)",
			},
		},
		"required":             []any{"summary", "why_correct", "why_chosen_is_wrong", "key_concept"},
		"additionalProperties": false,
	},
}
