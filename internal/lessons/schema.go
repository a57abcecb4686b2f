package lessons

import "github.com/abhisek/promptcoach/internal/llm"

// TipSchema defines the JSON schema for a coaching tip.
var TipSchema = &llm.Schema{
	Name:        "coaching-tip",
	Description: "A short coaching tip on a failed prompting exercise, with a rewritten prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"diagnosis": map[string]any{
				"type":        "string",
				"description": "One or two sentences on what held the prompt back",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One concrete change the learner should make next time",
			},
			"rewrite": map[string]any{
				"type":        "string",
				"description": "The learner's prompt rewritten to pass the exercise",
			},
		},
		"required":             []any{"diagnosis", "tip", "rewrite"},
		"additionalProperties": false,
	},
}
