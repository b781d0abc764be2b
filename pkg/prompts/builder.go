package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/quest-engine/pkg/chat"
)

// Builder constructs chat messages for LLM interaction using a fluent interface.
// It separates prompt building logic from game state management.
type Builder struct {
	directive      string
	context        *Context
	action         string
	responseFormat bool
	messages       []chat.ChatMessage
}

// New creates a new prompt builder with default settings.
func New() *Builder {
	return &Builder{
		messages: make([]chat.ChatMessage, 0),
	}
}

// WithDirective sets the system directive.
func (b *Builder) WithDirective(directive string) *Builder {
	b.directive = directive
	return b
}

// WithContext sets the turn context.
func (b *Builder) WithContext(c *Context) *Builder {
	b.context = c
	return b
}

// WithAction sets the player's action text.
func (b *Builder) WithAction(action string) *Builder {
	b.action = action
	return b
}

// WithResponseFormat appends the JSON field list to the directive, for
// providers that cannot enforce a response schema themselves.
func (b *Builder) WithResponseFormat(enabled bool) *Builder {
	b.responseFormat = enabled
	return b
}

// Build constructs and returns the final message array for LLM consumption.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.context == nil {
		return nil, fmt.Errorf("context is required")
	}
	if strings.TrimSpace(b.action) == "" {
		return nil, fmt.Errorf("action is required")
	}

	// Reset messages
	b.messages = make([]chat.ChatMessage, 0, 4)

	// 1. System directive
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: b.SystemText(),
	})

	// 2. Serialized state
	statePrompt, err := FormatContext(b.context)
	if err != nil {
		return nil, fmt.Errorf("error generating state prompt: %w", err)
	}
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: statePrompt,
	})

	// 3. Player action
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: b.action,
	})

	// 4. Final reminders
	b.addFinalPrompt()

	return b.messages, nil
}

// SystemText returns the directive plus the response format when enabled.
func (b *Builder) SystemText() string {
	directive := b.directive
	if directive == "" {
		directive = BuildSystemPrompt("")
	}
	if b.responseFormat {
		directive += "\n" + ResponseFormatPrompt
	}
	return directive
}

// addFinalPrompt adds game-end or standard reminders.
func (b *Builder) addFinalPrompt() {
	finalPrompt := UserPostPrompt
	if b.context.IsGameOver {
		finalPrompt = GameEndSystemPrompt
	}
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: finalPrompt,
	})
}

// FormatContext renders the context as the state prompt.
func FormatContext(c *Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("context is nil")
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}
	return fmt.Sprintf(StatePromptTemplate, data), nil
}

// Flatten splits messages into the leading system directive and one user
// prompt holding everything else, for APIs that take a single prompt.
func Flatten(messages []chat.ChatMessage) (system string, user string) {
	var sb strings.Builder
	for i, m := range messages {
		if i == 0 && m.Role == chat.ChatRoleSystem {
			system = m.Content
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		if m.Role == chat.ChatRoleUser {
			sb.WriteString("Player action: ")
		}
		sb.WriteString(m.Content)
	}
	return system, sb.String()
}
