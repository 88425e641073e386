package safety

import (
	"regexp"
	"strings"
)

// BlockReason identifies which gate branch fired.
type BlockReason string

const (
	// ReasonCrisis means the utterance matched a self-harm/crisis pattern.
	ReasonCrisis BlockReason = "crisis"
	// ReasonOffTopic means the utterance matched a topic-exclusion keyword.
	ReasonOffTopic BlockReason = "off_topic"
)

// Result is the outcome of a gate check.
type Result struct {
	// Allowed is true when the utterance may proceed to normal handling.
	Allowed bool
	// Reason is set when Allowed is false.
	Reason BlockReason
	// Rule names the specific pattern that fired, for logging.
	Rule string
	// Message is the fixed response to surface verbatim when blocked.
	Message string
}

// gatePattern is a compiled regex with a reason label.
type gatePattern struct {
	re     *regexp.Regexp
	reason string
}

// Crisis patterns. These take absolute precedence over everything else,
// including an in-progress booking.
var crisisPatterns = []gatePattern{
	{regexp.MustCompile(`\b(?:suicide|suicidal)\b`), "crisis:suicide"},
	{regexp.MustCompile(`\bkill\s+myself\b`), "crisis:kill_myself"},
	{regexp.MustCompile(`\bend\s+my\s+life\b`), "crisis:end_my_life"},
	{regexp.MustCompile(`\bhurt\s+myself\b`), "crisis:hurt_myself"},
	{regexp.MustCompile(`\bself[\s-]?harm\b`), "crisis:self_harm"},
	{regexp.MustCompile(`\b(?:don'?t|do\s+not)\s+want\s+to\s+(?:live|be\s+alive)\b`), "crisis:dont_want_to_live"},
}

// Off-topic keywords. Anything matching here gets a redirect back to clinic
// topics rather than a knowledge answer.
var offTopicPatterns = []gatePattern{
	{regexp.MustCompile(`\bweather\b`), "off_topic:weather"},
	{regexp.MustCompile(`\b(?:food|restaurant|recipe)\b`), "off_topic:food"},
	{regexp.MustCompile(`\b(?:movie|movies|netflix|concert)\b`), "off_topic:entertainment"},
	{regexp.MustCompile(`\b(?:sports?|football|soccer)\b`), "off_topic:sports"},
	{regexp.MustCompile(`\b(?:politics|election|politician)\b`), "off_topic:politics"},
}

// CrisisMessage is the fixed, non-negotiable safety response. It must always
// include live crisis contacts.
const CrisisMessage = `I'm concerned about your safety. Please reach out for immediate help:

- Singapore Suicide Prevention Hotline: 1800-221-4444
- Emergency Services: 995
- Samaritans of Singapore: 1767`

// OffTopicMessage redirects the conversation back to clinic topics.
const OffTopicMessage = "I'm here to help with questions about Dr. Sarah Tan's psychotherapy clinic and appointment bookings."

// Check scans an utterance for crisis and off-topic signals. Crisis detection
// runs strictly before off-topic detection: a crisis utterance that happens to
// mention an off-topic word must still get the crisis response. Pure function,
// no side effects.
func Check(utterance string) Result {
	lower := strings.ToLower(utterance)

	for _, p := range crisisPatterns {
		if p.re.MatchString(lower) {
			return Result{Reason: ReasonCrisis, Rule: p.reason, Message: CrisisMessage}
		}
	}

	for _, p := range offTopicPatterns {
		if p.re.MatchString(lower) {
			return Result{Reason: ReasonOffTopic, Rule: p.reason, Message: OffTopicMessage}
		}
	}

	return Result{Allowed: true}
}
