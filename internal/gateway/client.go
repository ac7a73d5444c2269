package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/inferahq/infera/internal/question"
)

// StatusError reports a non-2xx response from the question service.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("gateway: service returned %d: %s", e.Status, body)
}

// Client is the HTTP question source. It implements Source and
// CompletionSignaler against the question service's REST API.
type Client struct {
	http *resty.Client
	cfg  Config
}

// NewClient builds a Client from the given config.
func NewClient(cfg Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		http.SetAuthToken(cfg.Token)
	}
	return &Client{http: http, cfg: cfg}
}

// NextQuestion fetches the next question for the session. The raw payload
// is schema-checked before normalization so malformed service responses
// surface as errors instead of half-filled questions.
func (c *Client) NextQuestion(ctx context.Context, req Request) (*question.Question, error) {
	r := c.http.R().
		SetContext(ctx).
		SetQueryParam("testId", req.SessionID)
	if c.cfg.UserID != "" {
		r.SetQueryParam("userId", c.cfg.UserID)
	}
	if req.Hint != "" {
		r.SetQueryParam("note", req.Hint)
	}
	if len(req.Subjects) > 0 {
		r.SetQueryParam("subjects", strings.Join(req.Subjects, ","))
	}
	if len(req.Chapters) > 0 {
		r.SetQueryParam("chapters", strings.Join(req.Chapters, ","))
	}
	if len(req.Topics) > 0 {
		r.SetQueryParam("topics", strings.Join(req.Topics, ","))
	}

	resp, err := r.Get("/practice/next-question")
	if err != nil {
		return nil, fmt.Errorf("gateway: fetch next question: %w", err)
	}
	if resp.StatusCode() == 204 {
		return nil, ErrNoQuestion
	}
	if resp.IsError() {
		return nil, &StatusError{Status: resp.StatusCode(), Body: resp.String()}
	}

	if err := validatePayload(resp.Body()); err != nil {
		return nil, err
	}
	var wire question.WireQuestion
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, fmt.Errorf("gateway: decode question payload: %w", err)
	}
	return question.Normalize(&wire)
}

// MarkComplete posts the journey item completion signal.
func (c *Client) MarkComplete(ctx context.Context, sessionID, journeyItemID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"testId":        sessionID,
			"journeyItemId": journeyItemID,
		}).
		Post("/practice/journey-item/complete")
	if err != nil {
		return fmt.Errorf("gateway: mark journey item complete: %w", err)
	}
	if resp.IsError() {
		return &StatusError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
