package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the inference collaborator: messages in, reply text out.
// The credential is forwarded as-is and never inspected.
type Completer interface {
	Complete(ctx context.Context, credential string, messages []Message) (string, error)
}

// TransportError reports an unreachable endpoint, a non-2xx reply, an
// unusable body, or a timeout.
type TransportError struct {
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("inference error %d: %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("inference transport: %s: %v", e.Message, e.Err)
	default:
		return "inference transport: " + e.Message
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the call gave up waiting for the endpoint.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}
