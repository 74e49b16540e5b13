// Package messaging delivers bot replies to the conversation relay over
// HTTP. The relay owns the vendor-specific delivery; this client speaks a
// small JSON envelope.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"shopbot/internal/bot"
	"shopbot/internal/pkg/config"
	"shopbot/internal/pkg/errs"
)

type suggestionPayload struct {
	Text         string `json:"text"`
	PostbackData string `json:"postbackData"`
}

type cardPayload struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	MediaURL    string              `json:"mediaUrl,omitempty"`
	Suggestions []suggestionPayload `json:"suggestions,omitempty"`
}

type messagePayload struct {
	ConversationID string              `json:"conversationId"`
	AgentName      string              `json:"agentName"`
	Text           string              `json:"text,omitempty"`
	Card           *cardPayload        `json:"card,omitempty"`
	Carousel       []cardPayload       `json:"carousel,omitempty"`
	Suggestions    []suggestionPayload `json:"suggestions,omitempty"`
}

type eventPayload struct {
	ConversationID string `json:"conversationId"`
	EventType      string `json:"eventType"`
}

// Client implements bot.Sender against the relay's /messages and /events
// endpoints.
type Client struct {
	http    *http.Client
	baseURL string
	agent   string
}

func NewClient(cfg config.BotConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: cfg.RelayURL,
		agent:   cfg.AgentName,
	}
}

func (c *Client) Send(ctx context.Context, conversationID string, reply bot.Reply) error {
	payload := messagePayload{
		ConversationID: conversationID,
		AgentName:      c.agent,
		Text:           reply.Text,
		Suggestions:    toSuggestionPayloads(reply.Suggestions),
	}
	if reply.Card != nil {
		card := toCardPayload(*reply.Card)
		payload.Card = &card
	}
	for _, card := range reply.Carousel {
		payload.Carousel = append(payload.Carousel, toCardPayload(card))
	}
	return c.post(ctx, c.baseURL+"/messages", payload)
}

func (c *Client) StartTyping(ctx context.Context, conversationID string) error {
	return c.post(ctx, c.baseURL+"/events", eventPayload{
		ConversationID: conversationID,
		EventType:      "TYPING_STARTED",
	})
}

func (c *Client) StopTyping(ctx context.Context, conversationID string) error {
	return c.post(ctx, c.baseURL+"/events", eventPayload{
		ConversationID: conversationID,
		EventType:      "TYPING_STOPPED",
	})
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode relay payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build relay request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Wrap(err, "relay request failed")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return errs.New("relay rejected request with status " + resp.Status)
	}
	return nil
}

func toCardPayload(card bot.Card) cardPayload {
	return cardPayload{
		Title:       card.Title,
		Description: card.Description,
		MediaURL:    card.MediaURL,
		Suggestions: toSuggestionPayloads(card.Suggestions),
	}
}

func toSuggestionPayloads(suggestions []bot.Suggestion) []suggestionPayload {
	if len(suggestions) == 0 {
		return nil
	}
	out := make([]suggestionPayload, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionPayload{Text: s.Text, PostbackData: s.PostbackData})
	}
	return out
}
