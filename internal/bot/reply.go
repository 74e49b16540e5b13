// Package bot maps inbound text commands to state mutations and abstract
// replies. Replies are vendor-neutral; the Sender renders them into the
// messaging platform's wire format.
package bot

import "context"

type Suggestion struct {
	Text         string
	PostbackData string
}

type Card struct {
	Title       string
	Description string
	MediaURL    string
	Suggestions []Suggestion
}

// Reply is one outbound response: plain text, a single card, or a carousel,
// each with an attached list of quick-reply suggestions.
type Reply struct {
	Text        string
	Card        *Card
	Carousel    []Card
	Suggestions []Suggestion
}

// Sender delivers replies to the user. Typing indicators bracket each send
// and are best-effort; their failures never block the reply.
type Sender interface {
	StartTyping(ctx context.Context, conversationID string) error
	StopTyping(ctx context.Context, conversationID string) error
	Send(ctx context.Context, conversationID string, reply Reply) error
}
