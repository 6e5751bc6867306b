package prompt

import (
	"strings"
	"testing"

	"character-chat/backend/ai"
	"character-chat/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildSystemPromptFull(t *testing.T) {
	character := &models.Character{
		Name:         "Captain Flint",
		Personality:  strPtr("gruff but kind"),
		Backstory:    strPtr("sailed the seven seas"),
		TalkingStyle: strPtr("pirate slang"),
	}

	got := BuildSystemPrompt(character, []string{"I am a doctor", "I live in Paris"})

	want := "You are roleplaying as Captain Flint.\n\n" +
		"Personality: gruff but kind\n\n" +
		"Backstory: sailed the seven seas\n\n" +
		"Talking style: pirate slang\n\n" +
		"\nWhat you know about the user:\n\n" +
		"- I am a doctor\n\n" +
		"- I live in Paris\n\n" +
		"\nGuidelines:\n\n" +
		"1. Stay consistently in character\n\n" +
		"2. Reference relevant memories about the user when appropriate\n\n" +
		"3. Keep responses concise and engaging\n\n" +
		"4. Use your defined talking style"
	assert.Equal(t, want, got)
}

func TestBuildSystemPromptIsPure(t *testing.T) {
	character := &models.Character{Name: "Ada", Backstory: strPtr("a mathematician")}
	facts := []string{"I like tea"}

	assert.Equal(t, BuildSystemPrompt(character, facts), BuildSystemPrompt(character, facts))
}

func TestBuildSystemPromptMinimal(t *testing.T) {
	got := BuildSystemPrompt(&models.Character{Name: "Ada", Personality: strPtr("")}, nil)

	require.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got, "You are roleplaying as Ada.\n\n\nGuidelines:"))
	assert.NotContains(t, got, "Personality")
	assert.NotContains(t, got, "Backstory")
	assert.NotContains(t, got, "Talking style:")
	assert.NotContains(t, got, "What you know about the user")
	assert.True(t, strings.HasSuffix(got, "4. Use your defined talking style"))
}

func TestAssembleMessages(t *testing.T) {
	history := []ai.Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
	}

	got := AssembleMessages("system prompt", history, "third")

	assert.Equal(t, []ai.Message{
		{Role: "system", Content: "system prompt"},
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}, got)
}

func TestAssembleMessagesEmptyHistory(t *testing.T) {
	got := AssembleMessages("sys", nil, "hi")
	require.Len(t, got, 2)
	assert.Equal(t, "system", got[0].Role)
	assert.Equal(t, "hi", got[1].Content)
}
