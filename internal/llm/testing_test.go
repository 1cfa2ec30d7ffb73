package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func debriefSchema() *Schema {
	return &Schema{
		Name:        "test-debrief",
		Description: "A short coaching debrief",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"headline":   map[string]any{"type": "string", "minLength": 1},
				"strengths":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"next_steps": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
				"tone":       map[string]any{"type": "string", "enum": []any{"warm", "neutral"}},
			},
			"required":             []any{"headline", "next_steps"},
			"additionalProperties": false,
		},
	}
}

const validDebrief = `{"headline":"Steady under pressure","strengths":["calm"],"next_steps":["Practise box breathing daily"]}`

func jsonServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}
