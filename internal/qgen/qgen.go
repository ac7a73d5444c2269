// Package qgen generates practice questions with an LLM. It implements
// the same source interface as the HTTP gateway, so a session runs
// identically whether questions come from the service or from a model.
package qgen

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/inferahq/infera/internal/gateway"
	"github.com/inferahq/infera/internal/llm"
	"github.com/inferahq/infera/internal/question"
)

// Config bounds generation.
type Config struct {
	// MaxPriorQuestions caps how many earlier question texts go into the
	// dedup section of the prompt.
	MaxPriorQuestions int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns generation defaults tuned for short MCQs.
func DefaultConfig() Config {
	return Config{
		MaxPriorQuestions: 15,
		MaxTokens:         1024,
		Temperature:       0.7,
	}
}

// Generator produces questions through an llm.Provider. It implements
// gateway.Source and remembers what it already asked within the session.
type Generator struct {
	provider llm.Provider
	config   Config

	mu    sync.Mutex
	prior []string
	seq   int
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Difficulty   string   `json:"difficulty"`
	Concept      string   `json:"concept"`
	Note         string   `json:"note"`
}

// NextQuestion generates one question for the session. The provider
// response is schema-validated by the LLM layer; this layer still checks
// the parts a schema cannot express before handing the question out.
func (g *Generator) NextQuestion(ctx context.Context, req gateway.Request) (*question.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	g.mu.Lock()
	prior := make([]string, len(g.prior))
	copy(prior, g.prior)
	g.mu.Unlock()

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req, prior, g.config.MaxPriorQuestions)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("qgen: generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("qgen: parse response: %w", err)
	}

	q, err := g.toQuestion(raw, req)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.prior = append(g.prior, q.Text)
	g.mu.Unlock()

	return q, nil
}

func (g *Generator) toQuestion(raw questionOutput, req gateway.Request) (*question.Question, error) {
	g.mu.Lock()
	g.seq++
	number := g.seq
	g.mu.Unlock()

	opts := make([]question.Option, len(raw.Options))
	for i, text := range raw.Options {
		opts[i] = question.Option{
			ID:      uuid.NewString(),
			Text:    text,
			Correct: i == raw.CorrectIndex,
		}
	}

	var subject string
	if len(req.Subjects) > 0 {
		subject = req.Subjects[0]
	}

	q := &question.Question{
		ID:           uuid.NewString(),
		Number:       number,
		Text:         raw.QuestionText,
		Options:      opts,
		CorrectIndex: raw.CorrectIndex,
		SubjectID:    subject,
		Difficulty:   question.Difficulty(raw.Difficulty),
		Source:       question.SourceAI,
		Concept:      raw.Concept,
		AINote:       raw.Note,
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("qgen: generated question rejected: %w", err)
	}
	return q, nil
}
