package llm

import (
	"context"
	"encoding/json"
)

// Provider is a single LLM backend behind one generate call. Callers
// never touch SDK types, so which backend answers is a config decision.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the provider
	// asks the backend for structured output and the returned Content is
	// JSON that has already passed schema validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the resolved model identifier in use.
	ModelID() string
}

// Role marks who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Request carries everything one Generate call needs.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation body. Generating a question takes a
	// single user turn, so most requests hold exactly one entry.
	Messages []Message

	// Schema, when non-nil, switches the backend into its native
	// structured output mode. Nil means free text, handed back wrapped
	// as a raw JSON string.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature in [0, 1]. The zero value samples deterministically.
	Temperature float64
}

// Schema names and defines the JSON shape the model must produce.
type Schema struct {
	// Name is a kebab-case identifier such as "practice-question". It
	// doubles as the schema name on the wire and keys the compiled
	// schema cache.
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema body.
	Definition map[string]any
}

// Response is the backend-agnostic result of a Generate call.
type Response struct {
	// Content is the model output. Validated JSON when the request
	// carried a Schema, raw text wrapped as a JSON string otherwise.
	Content json.RawMessage

	// Usage is the token accounting the backend reported.
	Usage Usage

	// Model is the model that actually answered, per the API response.
	Model string

	// StopReason is normalized across backends to "end", "max_tokens"
	// or "error".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
