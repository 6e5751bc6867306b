// Package prompt turns a character and the facts remembered about the user
// into the message list submitted to the completion API.
package prompt

import (
	"fmt"
	"strings"

	"character-chat/backend/ai"
	"character-chat/backend/internal/models"
)

var guidelines = []string{
	"1. Stay consistently in character",
	"2. Reference relevant memories about the user when appropriate",
	"3. Keep responses concise and engaging",
	"4. Use your defined talking style",
}

// BuildSystemPrompt composes the system prompt for character. It is a pure
// function: the same character and facts always yield the same string.
func BuildSystemPrompt(character *models.Character, facts []string) string {
	pieces := []string{fmt.Sprintf("You are roleplaying as %s.", character.Name)}

	if v := value(character.Personality); v != "" {
		pieces = append(pieces, "Personality: "+v)
	}
	if v := value(character.Backstory); v != "" {
		pieces = append(pieces, "Backstory: "+v)
	}
	if v := value(character.TalkingStyle); v != "" {
		pieces = append(pieces, "Talking style: "+v)
	}

	if len(facts) > 0 {
		pieces = append(pieces, "\nWhat you know about the user:")
		for _, fact := range facts {
			pieces = append(pieces, "- "+fact)
		}
	}

	pieces = append(pieces, "\nGuidelines:")
	pieces = append(pieces, guidelines...)

	return strings.Join(pieces, "\n\n")
}

// AssembleMessages returns [system] + history + [user]. History order is kept as given.
func AssembleMessages(systemPrompt string, history []ai.Message, userInput string) []ai.Message {
	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ai.Message{Role: models.RoleUser, Content: userInput})
	return messages
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
