package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFactsNoDisclosure(t *testing.T) {
	for _, msg := range []string{
		"",
		"The sky is blue.",
		"What time is it?",
		"Tell me a story about dragons",
	} {
		assert.Empty(t, ExtractFacts(msg), msg)
	}
}

func TestExtractFactsOrderOfAppearance(t *testing.T) {
	facts := ExtractFacts("I am a doctor and I live in Paris.")

	require.GreaterOrEqual(t, len(facts), 2)
	assert.Equal(t, "I am a doctor and I live in Paris", facts[0])
	assert.Equal(t, "I live in Paris", facts[1])
}

func TestExtractFactsPatterns(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"contraction", "I'm tired!", []string{"I'm tired"}},
		{"name", "Hello. My name is Ada.", []string{"My name is Ada"}},
		{"favorite", "my favorite color is green", []string{"my favorite color is green"}},
		{"job", "My job is teaching, mostly", []string{"My job is teaching"}},
		{"preference", "I enjoy hiking. I hate rain", []string{"I enjoy hiking", "I hate rain"}},
		{"case insensitive", "i LIVE AT the lighthouse", []string{"i LIVE AT the lighthouse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFacts(tt.message))
		})
	}
}

func TestExtractFactsKeepsDuplicates(t *testing.T) {
	facts := ExtractFacts("I like tea. I like tea.")
	assert.Equal(t, []string{"I like tea", "I like tea"}, facts)
}

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"I love this, it's great", SentimentPositive},
		{"I hate this, it's terrible", SentimentNegative},
		{"The sky is blue", SentimentNeutral},
		{"good and bad", SentimentNeutral},
		{"", SentimentNeutral},
		{"GREAT great GrEaT but sad and angry", SentimentNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AnalyzeSentiment(tt.message), tt.message)
	}
}
