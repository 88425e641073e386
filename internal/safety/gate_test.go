package safety

import (
	"strings"
	"testing"
)

func TestCheckCrisis(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain suicide mention", "I've been thinking about suicide"},
		{"kill myself", "I want to kill myself"},
		{"end my life", "sometimes I want to end my life"},
		{"self harm hyphenated", "I've been struggling with self-harm"},
		{"hurt myself", "I might hurt myself tonight"},
		{"uppercase", "I WANT TO KILL MYSELF"},
		{"crisis wins over booking intent", "I want to kill myself, can I book an appointment?"},
		{"crisis wins over off-topic word", "the weather is fine but I want to end my life"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(tt.input)
			if res.Allowed {
				t.Fatalf("Check(%q) allowed, want crisis block", tt.input)
			}
			if res.Reason != ReasonCrisis {
				t.Fatalf("Check(%q) reason = %s, want crisis", tt.input, res.Reason)
			}
			if !strings.Contains(res.Message, "1800-221-4444") {
				t.Errorf("crisis message missing hotline: %q", res.Message)
			}
		})
	}
}

func TestCheckOffTopic(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"weather", "What's the weather like today?"},
		{"food", "any good restaurant nearby?"},
		{"movies", "seen any good movies lately?"},
		{"sports", "did you watch the football game?"},
		{"politics", "what do you think about the election?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(tt.input)
			if res.Allowed {
				t.Fatalf("Check(%q) allowed, want off-topic block", tt.input)
			}
			if res.Reason != ReasonOffTopic {
				t.Fatalf("Check(%q) reason = %s, want off_topic", tt.input, res.Reason)
			}
			if res.Message != OffTopicMessage {
				t.Errorf("Check(%q) message = %q, want redirect", tt.input, res.Message)
			}
		})
	}
}

func TestCheckAllowed(t *testing.T) {
	inputs := []string{
		"I'd like to book an appointment",
		"What services does Dr. Tan offer?",
		"my email is john@example.com",
		"",
		"hello",
	}
	for _, input := range inputs {
		if res := Check(input); !res.Allowed {
			t.Errorf("Check(%q) blocked with %s, want allowed", input, res.Reason)
		}
	}
}
