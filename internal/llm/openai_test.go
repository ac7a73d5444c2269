package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func openaiAgainst(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
	}
}

func TestOpenAIProvider_GeneratesQuestion(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-q1",
			"object":  "chat.completion",
			"created": 1756400000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": mcqBody,
					},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     280,
				"completion_tokens": 70,
				"total_tokens":      350,
			},
		})
	}

	p := openaiAgainst(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an adaptive tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Current streak: 4. Generate the next question."}},
		Schema:    mcqSchema(),
		MaxTokens: 1024,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != mcqBody {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 280 || resp.Usage.OutputTokens != 70 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("stop reason = %q, want end", resp.StopReason)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   map[string]any
		check  func(error) bool
	}{
		{
			"rate limited",
			http.StatusTooManyRequests,
			map[string]any{"error": map[string]any{"type": "tokens", "message": "slow down", "code": "rate_limit_exceeded"}},
			func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) },
		},
		{
			"server error",
			http.StatusInternalServerError,
			map[string]any{"error": map[string]any{"type": "server_error", "message": "boom"}},
			func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := openaiAgainst(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(tc.body)
			})

			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "next question"}},
				MaxTokens: 256,
			})
			if err == nil || !tc.check(err) {
				t.Fatalf("err = %T (%v)", err, err)
			}
		})
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("model = %q", p.ModelID())
	}
}

func TestOpenAIProvider_BaseURLOverride(t *testing.T) {
	// OpenRouter and friends are reached through the same provider.
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://openrouter.ai/api/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("model = %q, want gpt-4o", p.ModelID())
	}
}
