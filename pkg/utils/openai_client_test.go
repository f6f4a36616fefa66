package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, content string, check func(body map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if check != nil {
			check(body)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   body["model"],
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
}

func TestOpenAITextGenerator_JSONMode(t *testing.T) {
	srv := newChatServer(t, `{"trips":[]}`, func(body map[string]any) {
		assert.Equal(t, "gpt-test", body["model"])
		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]any)["role"])
		assert.Equal(t, "be terse", messages[0].(map[string]any)["content"])
		assert.Equal(t, "user", messages[1].(map[string]any)["role"])

		format := body["response_format"].(map[string]any)
		assert.Equal(t, "json_object", format["type"])
	})
	defer srv.Close()

	gen := NewOpenAITextGenerator("sk-test", "gpt-test", srv.URL+"/v1", GenerationOptions{Temperature: 0.2})
	out, err := gen.Generate(context.Background(), Prompt{
		SystemText: "be terse",
		UserText:   "give me trips as JSON",
		JSONMode:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"trips":[]}`, out)
	assert.Equal(t, "openai", gen.Provider())
	assert.NoError(t, gen.Close())
}

func TestOpenAITextGenerator_PlainText(t *testing.T) {
	srv := newChatServer(t, "hello traveler", func(body map[string]any) {
		_, hasFormat := body["response_format"]
		assert.False(t, hasFormat)
		assert.Len(t, body["messages"].([]any), 1)
	})
	defer srv.Close()

	gen := NewOpenAITextGenerator("sk-test", "gpt-test", srv.URL+"/v1", GenerationOptions{})
	out, err := gen.Generate(context.Background(), Prompt{UserText: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello traveler", out)
}

func TestOpenAITextGenerator_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	gen := NewOpenAITextGenerator("sk-test", "gpt-test", srv.URL+"/v1", GenerationOptions{})
	_, err := gen.Generate(context.Background(), Prompt{UserText: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai")
}
