package llm

import "context"

// ChatHistoryOff disables server-side conversation memory.
const ChatHistoryOff = "off"

// Request is a single question for a hosted assistant model.
type Request struct {
	Model       string `json:"model"`
	Question    string `json:"question"`
	ChatHistory string `json:"chatHistory"`
}

// Response mirrors the provider envelope: Status false means the call went
// through but the service refused it, with the reason in Message.
type Response struct {
	Status  bool
	Message string
	Body    string
}

// Assistant is a minimal abstraction for the code-generation service used by the domain.
// It hides the concrete provider to preserve dependency direction.
type Assistant interface {
	Ask(ctx context.Context, req Request) (Response, error)
}
