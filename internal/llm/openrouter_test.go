package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"}); err == nil {
		t.Fatal("expected an error without an API key")
	}
}

func TestNewOpenRouterProvider_Models(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"", defaultOpenRouterModel},
		{"anthropic/claude-haiku-4-5", "anthropic/claude-haiku-4-5"},
		// Friendly names belong to the direct providers and are not mapped.
		{"gpt-4o-mini", "gpt-4o-mini"},
	}
	for _, tt := range tests {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: tt.model})
		if err != nil {
			t.Fatalf("model %q: %v", tt.model, err)
		}
		if p.ModelID() != tt.want {
			t.Errorf("ModelID() = %q, want %q", p.ModelID(), tt.want)
		}
		if providerName(p) != "openrouter" {
			t.Errorf("providerName = %q, want openrouter", providerName(p))
		}
	}
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var gotTitle, gotReferer, gotModel, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("X-Title")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotPath = r.URL.Path
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "gen-test",
			"object": "chat.completion",
			"model":  body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "Both ends planted: gaps + 1."},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 9, "total_tokens": 39},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.5-flash",
		BaseURL: server.URL + "/api/v1/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(WithPurpose(context.Background(), PurposeChat), chatTurn("why add one?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Both ends planted: gaps + 1." {
		t.Errorf("reply = %q", resp.Text)
	}
	if gotTitle != openRouterTitle || gotReferer != openRouterReferer {
		t.Errorf("attribution headers = %q, %q", gotTitle, gotReferer)
	}
	if gotModel != "google/gemini-2.5-flash" {
		t.Errorf("model sent = %q", gotModel)
	}
	if gotPath != "/api/v1/chat/completions" {
		t.Errorf("path = %q, want the trailing slash trimmed", gotPath)
	}
}
