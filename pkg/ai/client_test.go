package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicesim/pkg/config"
	"dicesim/pkg/dice"
	"dicesim/pkg/simulation"
)

// fakeChatServer answers every chat completion with reply and records the last request.
func fakeChatServer(t *testing.T, reply string, last *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if last != nil {
			_ = json.NewDecoder(r.Body).Decode(last)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  "test-model",
		}
		if reply != "" {
			resp.Choices = []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(config.AI{})
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestInterpret(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := fakeChatServer(t, "The dice look fair.", &got)
	defer srv.Close()

	client, err := New(config.AI{APIKey: "sk-test", BaseURL: srv.URL, Model: "test-model"})
	require.NoError(t, err)

	res, err := simulation.RunSeeded(dice.Params{Dice: 2, Sides: 6, Trials: 3600}, 1)
	require.NoError(t, err)

	text, err := client.Interpret(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, "The dice look fair.", text)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "2d6 x 3600 (seed 1)")
}

func TestChatRequest_NoChoices(t *testing.T) {
	srv := fakeChatServer(t, "", nil)
	defer srv.Close()

	client, err := New(config.AI{APIKey: "sk-test", BaseURL: srv.URL, Model: "test-model"})
	require.NoError(t, err)
	_, err = client.ChatRequest(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "Hello"},
	})
	assert.True(t, errors.Is(err, ErrEmptyReply))
}

func TestChatRequest_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom","type":"server_error"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New(config.AI{APIKey: "sk-test", BaseURL: srv.URL, Model: "test-model"})
	require.NoError(t, err)
	_, err = client.ChatRequest(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "Hello"},
	})
	assert.Error(t, err)
}
