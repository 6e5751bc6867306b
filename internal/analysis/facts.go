// Package analysis holds the lightweight text heuristics applied to user
// messages: personal fact extraction and keyword sentiment.
package analysis

import (
	"regexp"
	"sort"
)

// factPatterns are applied independently of each other, so one phrase may be
// captured by more than one pattern.
var factPatterns = []*regexp.Regexp{
	// self-identification: "I am a doctor", "I'm tired"
	regexp.MustCompile(`(?i)(?:I am|I'm) (?:a\s)?([^.,!?]+)`),
	// named preference, job or hobby
	regexp.MustCompile(`(?i)My (?:name is|favorite|job|hobby) (?:is\s)?([^.,!?]+)`),
	// preferences
	regexp.MustCompile(`(?i)I (?:like|love|hate|enjoy) ([^.,!?]+)`),
	// residence
	regexp.MustCompile(`(?i)I live (?:in|at) ([^.,!?]+)`),
}

type factMatch struct {
	start int
	text  string
}

// ExtractFacts returns every span of message matching a personal-disclosure
// pattern, in order of appearance. The whole match is kept, not just the
// captured group. Duplicates are not removed.
func ExtractFacts(message string) []string {
	var matches []factMatch
	for _, re := range factPatterns {
		for _, loc := range re.FindAllStringIndex(message, -1) {
			matches = append(matches, factMatch{start: loc[0], text: message[loc[0]:loc[1]]})
		}
	}

	// Matches at the same offset keep pattern order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	facts := make([]string, 0, len(matches))
	for _, m := range matches {
		facts = append(facts, m.text)
	}
	return facts
}
