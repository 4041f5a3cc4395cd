package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackThankYouMessage(t *testing.T) {
	message := FallbackThankYouMessage("Acme Corp", "Ozone Graphics")
	assert.Equal(t,
		"Thank you for your business, Acme Corp! We at Ozone Graphics appreciate your prompt payment and look forward to working with you again.",
		message,
	)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(nil)
	assert.Equal(t, "gemini-2.5-flash", client.modelID)

	client = NewClient(&Config{APIKey: "key"})
	assert.Equal(t, "gemini-2.5-flash", client.modelID)

	client = NewClient(&Config{APIKey: "key", ModelID: "gemini-2.0-pro"})
	assert.Equal(t, "gemini-2.0-pro", client.modelID)
}

func TestGenerateThankYouMessageWithoutAPIKey(t *testing.T) {
	client := NewClient(&Config{})

	_, err := client.GenerateThankYouMessage(context.Background(), "Acme Corp", "Ozone Graphics")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestGenerateThankYouMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var request generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Contents, 1)
		require.Len(t, request.Contents[0].Parts, 1)
		assert.Contains(t, request.Contents[0].Parts[0].Text, "Acme Corp")
		assert.Contains(t, request.Contents[0].Parts[0].Text, "Ozone Graphics")
		require.NotNil(t, request.GenerationConfig)
		assert.Equal(t, 0.8, request.GenerationConfig.Temperature)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Thanks a lot, "},{"text":"Acme Corp!"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(&Config{APIKey: "test-key"})
	client.apiURL = srv.URL

	message, err := client.GenerateThankYouMessage(context.Background(), "Acme Corp", "Ozone Graphics")
	require.NoError(t, err)
	assert.Equal(t, "Thanks a lot, Acme Corp!", message)
}

func TestGenerateThankYouMessageAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(&Config{APIKey: "test-key"})
	client.apiURL = srv.URL

	_, err := client.GenerateThankYouMessage(context.Background(), "Acme Corp", "Ozone Graphics")
	require.Error(t, err)

	var geminiErr *GeminiError
	require.True(t, errors.As(err, &geminiErr))
	assert.Equal(t, "check_response_status", geminiErr.Op)
}

func TestParseGenerateContentResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "single part",
			body: `{"candidates":[{"content":{"parts":[{"text":"Thank you!"}]}}]}`,
			want: "Thank you!",
		},
		{
			name: "joins parts and trims whitespace",
			body: `{"candidates":[{"content":{"parts":[{"text":"  Thank "},{"text":"you!  "}]}}]}`,
			want: "Thank you!",
		},
		{
			name:    "no candidates",
			body:    `{"candidates":[]}`,
			wantErr: true,
		},
		{
			name:    "empty text",
			body:    `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGenerateContentResponse([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
