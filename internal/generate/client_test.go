package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlane-advisory/clearlane-web/internal/config"
)

func newTestClient(endpoint string) *Client {
	return New(config.Generation{
		Endpoint: endpoint,
		Model:    "test-model",
		APIKey:   "test-key",
	})
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-model", payload.Model)
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, "system", payload.Messages[0].Role)
		assert.Equal(t, "write a summary", payload.Messages[1].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"a summary"}}]}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Generate(context.Background(), "write a summary")
	require.NoError(t, err)
	assert.Equal(t, "a summary", text)
}

func TestGenerateErrors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
		},
		{
			name: "blank completion",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  "}}]}`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			_, err := newTestClient(server.URL).Generate(context.Background(), "prompt")
			require.Error(t, err)
		})
	}
}

func TestGenerateMisconfigured(t *testing.T) {
	_, err := New(config.Generation{}).Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrMisconfigured)

	var nilClient *Client
	_, err = nilClient.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrMisconfigured)
}
