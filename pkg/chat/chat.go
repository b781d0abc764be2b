package chat

import (
	"fmt"
	"strings"
)

// MaxMessageLength bounds a single player action.
const MaxMessageLength = 1000

// maxSpeakerLength is the longest prefix before a colon still read as a speaker name.
const maxSpeakerLength = 50

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // Narrator
	ChatRoleSystem = "system"    // Directive and context
)

// ChatMessage represents a single chat message in the conversation sent
// to chat-style LLM APIs.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ValidateMessage checks a player action before it is sent anywhere.
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(message) > MaxMessageLength {
		return fmt.Errorf("message exceeds maximum length of %d characters", MaxMessageLength)
	}
	return nil
}

// FormatWithPCName prefixes a message with the PC's name unless it already
// starts with a speaker label such as "Narrator: ".
func FormatWithPCName(message, pcName string) string {
	if idx := strings.Index(message, ":"); idx > 0 && idx <= maxSpeakerLength {
		return message
	}
	return pcName + ": " + message
}
