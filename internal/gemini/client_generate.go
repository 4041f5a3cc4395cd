package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// generateContentRequest is the payload for the generateContent endpoint
type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

// generateContentResponse is the subset of the API response we read
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateThankYouMessage asks the model for a short, warm thank-you
// message for a client's payment. Returns ErrNoAPIKey when no credential
// is configured.
func (c *Client) GenerateThankYouMessage(ctx context.Context, clientName, shopName string) (string, error) {
	if c.apiKey == "" {
		return "", &GeminiError{
			Op:  "validate_configuration",
			Err: ErrNoAPIKey,
		}
	}

	prompt := fmt.Sprintf(
		`Generate a short, warm, and professional thank you message for a client named %q for their payment to our shop, %q. Keep it under 25 words and sound friendly.`,
		clientName, shopName,
	)

	payload := generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature: 0.8,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &GeminiError{
			Op:  "marshal_request",
			Err: err,
		}
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.apiURL, c.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &GeminiError{
			Op:  "create_request",
			Err: err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GeminiError{
			Op:  "send_request",
			Err: err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GeminiError{
			Op:  "read_response",
			Err: err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &GeminiError{
			Op:  "check_response_status",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	return parseGenerateContentResponse(respBody)
}

// parseGenerateContentResponse extracts the generated text from the API response
func parseGenerateContentResponse(respBody []byte) (string, error) {
	var response generateContentResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", &GeminiError{
			Op:  "parse_response_json",
			Err: fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	if len(response.Candidates) == 0 {
		return "", &GeminiError{
			Op:  "check_response_candidates",
			Err: fmt.Errorf("no candidates in response"),
		}
	}

	var builder strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		builder.WriteString(p.Text)
	}

	message := strings.TrimSpace(builder.String())
	if message == "" {
		return "", &GeminiError{
			Op:  "check_response_text",
			Err: fmt.Errorf("empty message in response"),
		}
	}

	return message, nil
}
