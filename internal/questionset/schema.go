package questionset

import (
	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/quiz"
)

func itemID() map[string]any {
	return map[string]any{"type": "integer", "description": "1-based position within the tier"}
}

// Schema is the JSON shape requested from the model.
var Schema = &llm.Schema{
	Name:        "question-set",
	Description: "A three-tier question set for one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string"},
			"multiple_choice": map[string]any{
				"type":     "array",
				"minItems": quiz.MCQCount,
				"maxItems": quiz.MCQCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       itemID(),
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"id":   map[string]any{"type": "string", "description": "Option letter: A, B, C or D"},
									"text": map[string]any{"type": "string"},
								},
								"required": []any{"id", "text"},
							},
						},
						"correct_answer": map[string]any{"type": "string", "description": "The id of the correct option"},
						"explanation":    map[string]any{"type": "string"},
					},
					"required": []any{"id", "question", "options", "correct_answer", "explanation"},
				},
			},
			"true_false": map[string]any{
				"type":     "array",
				"minItems": quiz.JudgmentCount,
				"maxItems": quiz.JudgmentCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":      itemID(),
						"context": map[string]any{"type": "string"},
						"statements": map[string]any{
							"type":     "array",
							"minItems": quiz.SubStatements,
							"maxItems": quiz.SubStatements,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"id":        itemID(),
									"statement": map[string]any{"type": "string"},
									"correct":   map[string]any{"type": "boolean"},
								},
								"required": []any{"id", "statement", "correct"},
							},
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"id", "context", "statements", "explanation"},
				},
			},
			"short_answer": map[string]any{
				"type":     "array",
				"minItems": quiz.ShortAnswerCount,
				"maxItems": quiz.ShortAnswerCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":             itemID(),
						"question":       map[string]any{"type": "string"},
						"correct_answer": map[string]any{"type": "string", "description": "A number or a short phrase"},
						"explanation":    map[string]any{"type": "string"},
					},
					"required": []any{"id", "question", "correct_answer", "explanation"},
				},
			},
		},
		"required": []any{"topic", "multiple_choice", "true_false", "short_answer"},
	},
}
