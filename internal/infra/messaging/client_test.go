//go:build unit

package messaging_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopbot/internal/bot"
	"shopbot/internal/infra/messaging"
	"shopbot/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := messaging.NewClient(config.BotConfig{RelayURL: srv.URL, AgentName: "Shop Bot"})
	err := client.Send(context.Background(), "conv-1", bot.Reply{
		Text: "hello",
		Suggestions: []bot.Suggestion{
			{Text: "Shop Our Collection", PostbackData: "shop"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "conv-1", got["conversationId"])
	assert.Equal(t, "Shop Bot", got["agentName"])
	assert.Equal(t, "hello", got["text"])
	suggestions, ok := got["suggestions"].([]any)
	require.True(t, ok)
	require.Len(t, suggestions, 1)
}

func TestClient_TypingEvents(t *testing.T) {
	var events []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		events = append(events, payload["eventType"].(string))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := messaging.NewClient(config.BotConfig{RelayURL: srv.URL})
	require.NoError(t, client.StartTyping(context.Background(), "conv-1"))
	require.NoError(t, client.StopTyping(context.Background(), "conv-1"))

	assert.Equal(t, []string{"TYPING_STARTED", "TYPING_STOPPED"}, events)
}

func TestClient_RelayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := messaging.NewClient(config.BotConfig{RelayURL: srv.URL})
	err := client.Send(context.Background(), "conv-1", bot.Reply{Text: "hi"})
	assert.Error(t, err)
}
