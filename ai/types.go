package ai

import "context"

// Message is one entry of the ordered conversation sent to the completion API
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces the assistant reply for an assembled conversation.
// Implementations make a single blocking call: no retries, no streaming.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface
type CompleterFunc func(ctx context.Context, messages []Message) (string, error)

// Complete calls f(ctx, messages)
func (f CompleterFunc) Complete(ctx context.Context, messages []Message) (string, error) {
	return f(ctx, messages)
}
