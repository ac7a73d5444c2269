package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func questionResponse() MockResponse {
	return MockResponse{Content: json.RawMessage(mcqBody)}
}

func downResponse() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("upstream down")}}
}

func TestRetry_CallCounts(t *testing.T) {
	cases := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{
			"clean first attempt",
			[]MockResponse{questionResponse()},
			false, 1,
		},
		{
			"transient outage then question",
			[]MockResponse{downResponse(), questionResponse()},
			false, 2,
		},
		{
			"outage outlasts the budget",
			[]MockResponse{downResponse(), downResponse(), downResponse()},
			true, 3,
		},
		{
			"schema-invalid output gets one regeneration",
			[]MockResponse{
				{Err: &ErrInvalidResponse{Content: json.RawMessage(`not a question`), Err: errors.New("schema")}},
				{Err: &ErrInvalidResponse{Content: json.RawMessage(`still not`), Err: errors.New("schema")}},
				questionResponse(), // must not be reached
			},
			true, 2,
		},
		{
			"truncated output is terminal",
			[]MockResponse{{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"question_te`)}}},
			true, 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewMockProvider(tc.responses...)
			p := WithRetry(mock, fastRetry())

			_, err := p.Generate(context.Background(), Request{Schema: mcqSchema()})
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if mock.CallCount() != tc.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tc.wantCalls)
			}
		})
	}
}

func TestRetry_CanceledContextStopsRetrying(t *testing.T) {
	mock := NewMockProvider(downResponse(), downResponse(), questionResponse())
	p := WithRetry(mock, fastRetry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("canceled context must surface an error")
	}
}

func TestRetry_RateLimitHonorsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
		questionResponse(),
	)
	p := WithRetry(mock, fastRetry())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != mcqBody {
		t.Fatalf("content = %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry())
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q, want mock", p.ModelID())
	}
}
