package prompt

import (
	"strings"

	"github.com/janhq/jan-ask/internal/domain/grounding"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one chat message sent upstream.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provenance markers the model appends to sentences taken from a source.
const (
	MarkerReddit     = "(Reddit)"
	MarkerDuckDuckGo = "(DuckDuckGo)"
)

// SystemInstruction tells the model how to use and cite the supplied context.
const SystemInstruction = "You are a helpful assistant. The user message may include context gathered " +
	"from Reddit and DuckDuckGo ahead of the user's input. Use that context when it is relevant. " +
	"When a sentence in your answer is derived from a source, append the marker " + MarkerReddit +
	" or " + MarkerDuckDuckGo + " to that sentence. Do not add a marker when no source was used. " +
	"If you are not sure of an answer, say so plainly instead of hedging. Format your answer in Markdown."

const (
	headerReddit     = "### Reddit context"
	headerDuckDuckGo = "### DuckDuckGo context"
	headerInput      = "### User input"
)

// Build returns the system message followed by the user message. Context
// blocks appear in a fixed order and only when non-empty. Without any
// context the user message is the raw input.
func Build(input string, ctx grounding.Contexts) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemInstruction},
		{Role: RoleUser, Content: userContent(input, ctx)},
	}
}

func userContent(input string, ctx grounding.Contexts) string {
	if ctx.Empty() {
		return input
	}

	var blocks []string
	if ctx.Reddit.Text != "" {
		blocks = append(blocks, headerReddit+"\n"+ctx.Reddit.Text)
	}
	if ctx.DuckDuckGo != "" {
		blocks = append(blocks, headerDuckDuckGo+"\n"+ctx.DuckDuckGo)
	}
	blocks = append(blocks, headerInput+"\n"+input)
	return strings.Join(blocks, "\n\n")
}
