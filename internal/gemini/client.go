// Package gemini is a thin client for the Google generative-language API,
// used to produce short thank-you messages for paid invoices.
package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoAPIKey is returned when no API key is configured. Callers are
// expected to fall back to FallbackThankYouMessage rather than surface
// this to users.
var ErrNoAPIKey = errors.New("gemini API key is not configured")

// GeminiError represents an error that occurred during Gemini API interaction
type GeminiError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *GeminiError) Error() string {
	if e.Err == nil {
		return "gemini error: " + e.Op
	}
	return "gemini error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *GeminiError) Unwrap() error {
	return e.Err
}

// Client represents a client for the Gemini generateContent API
type Client struct {
	apiKey     string
	apiURL     string
	modelID    string
	httpClient *http.Client
}

// Config holds configuration for the Gemini client
type Config struct {
	APIKey  string
	ModelID string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for the Gemini client
func DefaultConfig() *Config {
	return &Config{
		ModelID: "gemini-2.5-flash",
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new Gemini client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	modelID := config.ModelID
	if modelID == "" {
		modelID = DefaultConfig().ModelID
	}

	return &Client{
		apiKey:  config.APIKey,
		apiURL:  "https://generativelanguage.googleapis.com/v1beta/models",
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// FallbackThankYouMessage returns the deterministic message used whenever
// the generative API is unavailable or fails.
func FallbackThankYouMessage(clientName, shopName string) string {
	return fmt.Sprintf(
		"Thank you for your business, %s! We at %s appreciate your prompt payment and look forward to working with you again.",
		clientName, shopName,
	)
}
