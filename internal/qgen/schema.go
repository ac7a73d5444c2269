package qgen

import "github.com/inferahq/infera/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation
// responses.
var QuestionSchema = &llm.Schema{
	Name:        "practice-question",
	Description: "A single multiple-choice practice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner, in plain ASCII text",
			},
			"options": map[string]any{
				"type":        "array",
				"minItems":    4,
				"maxItems":    4,
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 answer options. Distractors should reflect common mistakes, not random values.",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Index of the correct option within options",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "Difficulty of this question",
			},
			"concept": map[string]any{
				"type":        "string",
				"description": "The single concept this question exercises, e.g. 'fraction addition'",
			},
			"note": map[string]any{
				"type":        "string",
				"description": "One sentence on why this question was chosen for the learner right now",
			},
		},
		"required":             []any{"question_text", "options", "correct_index", "difficulty", "concept", "note"},
		"additionalProperties": false,
	},
}
