package gateway

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config holds the question-service connection settings.
type Config struct {
	BaseURL string
	Token   string
	UserID  string
	Timeout time.Duration
}

const defaultTimeout = 15 * time.Second

// ConfigFromEnv reads the service settings from INFERA_API_URL,
// INFERA_API_TOKEN, INFERA_USER_ID and INFERA_API_TIMEOUT. Only the URL is
// required.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		BaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("INFERA_API_URL")), "/"),
		Token:   strings.TrimSpace(os.Getenv("INFERA_API_TOKEN")),
		UserID:  strings.TrimSpace(os.Getenv("INFERA_USER_ID")),
		Timeout: defaultTimeout,
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("gateway: INFERA_API_URL not set")
	}
	if raw := strings.TrimSpace(os.Getenv("INFERA_API_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.New("gateway: invalid INFERA_API_TIMEOUT: " + raw)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
