package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func clusterSchema() *Schema {
	return &Schema{
		Name:        "test-cluster",
		Description: "A true/false cluster",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"context": map[string]any{"type": "string"},
				"statements": map[string]any{
					"type":     "array",
					"minItems": 4,
					"maxItems": 4,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":    map[string]any{"type": "string", "enum": []any{"a", "b", "c", "d"}},
							"truth": map[string]any{"type": "boolean"},
						},
						"required": []any{"id", "truth"},
					},
				},
			},
			"required": []any{"context", "statements"},
		},
	}
}

const validCluster = `{"context":"f(x)=x^2","statements":[
	{"id":"a","truth":true},{"id":"b","truth":false},
	{"id":"c","truth":true},{"id":"d","truth":false}]}`

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", validCluster, false},
		{"missing required", `{"context":"x"}`, true},
		{"wrong type", `{"context":1,"statements":[]}`, true},
		{"too few items", `{"context":"x","statements":[{"id":"a","truth":true}]}`, true},
		{"bad enum", `{"context":"x","statements":[
			{"id":"a","truth":true},{"id":"b","truth":true},
			{"id":"c","truth":true},{"id":"e","truth":true}]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(clusterSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"```JSON\n  {\"a\":1}  \n```", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := string(stripCodeFences([]byte(tt.in))); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStructuredContent_FencedJSON(t *testing.T) {
	fenced := json.RawMessage("```json\n" + validCluster + "\n```")
	got, err := structuredContent(clusterSchema(), fenced)
	if err != nil {
		t.Fatalf("structuredContent: %v", err)
	}
	if !json.Valid(got) {
		t.Errorf("content is not JSON: %s", got)
	}
}
