package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

const mcqBody = `{"question_text":"What is 6 x 7?","options":["36","42","48","54"],"correct_index":1}`

func TestMockProvider_ServesQueueInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(mcqBody), Usage: Usage{InputTokens: 120, OutputTokens: 60, TotalTokens: 180}},
		MockResponse{Content: json.RawMessage(`{"question_text":"Force equals?","options":["ma","mv","mgh","qE"],"correct_index":0}`)},
	)

	first, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "next question"}}})
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if string(first.Content) != mcqBody {
		t.Fatalf("first content = %s", first.Content)
	}
	if first.Usage.TotalTokens != 180 || first.StopReason != "end" {
		t.Fatalf("usage/stop = %+v %q", first.Usage, first.StopReason)
	}

	second, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "another"}}})
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	var out struct {
		CorrectIndex int `json:"correct_index"`
	}
	if err := json.Unmarshal(second.Content, &out); err != nil || out.CorrectIndex != 0 {
		t.Fatalf("second content = %s (err %v)", second.Content, err)
	}
}

func TestMockProvider_ExhaustedQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestMockProvider_RecordsPrompts(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(mcqBody)})

	_, _ = mock.Generate(context.Background(), Request{
		System:   "You are an adaptive tutor.",
		Messages: []Message{{Role: RoleUser, Content: "Recent accuracy: 80%"}},
		Schema:   mcqSchema(),
	})

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	got := mock.Calls[0]
	if got.System != "You are an adaptive tutor." {
		t.Fatalf("system = %q", got.System)
	}
	if got.Schema == nil || got.Schema.Name != "mcq-check" {
		t.Fatalf("schema = %+v, want mcq-check carried through", got.Schema)
	}
}

func TestMockProvider_CannedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: 0}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want ErrRateLimit", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("bare context purpose = %q, want unknown", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "question-gen")); p != "question-gen" {
		t.Fatalf("purpose = %q, want question-gen", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "cohere"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("no keys set, discovery must fail")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-a")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" {
		t.Fatalf("discovered %q, want anthropic", cfg.Provider)
	}

	// Gemini outranks the others when several keys are present.
	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Fatalf("discovered %q, want gemini", cfg.Provider)
	}
}
