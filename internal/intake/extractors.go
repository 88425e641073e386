package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Each extractor is a pure function over one utterance: ordered rule list,
// first match wins, and any parse or validation failure degrades to "no value
// found" rather than an error.

// ---------- NRIC ----------

// Singapore NRIC/FIN shape: one letter from the restricted prefix set, seven
// digits, one checksum letter. Checksum itself is not verified.
var (
	nricBareRE   = regexp.MustCompile(`\b[STFG]\d{7}[A-Z]\b`)
	nricMyRE     = regexp.MustCompile(`MY\s+(?:NRIC|IC)\s+IS\s+([STFG]\d{7}[A-Z])\b`)
	nricFramedRE = regexp.MustCompile(`(?:NRIC|IC)(?:\s+IS)?\s+([STFG]\d{7}[A-Z])\b`)
)

// ExtractNRIC pulls an NRIC-shaped token out of the utterance. Rules run in
// order: bare token anywhere, "my NRIC/IC is X" framing, then "NRIC/IC is X"
// without "my". The first structural match wins; multiple candidates in one
// utterance are not reconciled.
func ExtractNRIC(text string) (string, bool) {
	upper := strings.ToUpper(text)

	if m := nricBareRE.FindString(upper); m != "" {
		return m, true
	}
	if m := nricMyRE.FindStringSubmatch(upper); len(m) == 2 {
		return m[1], true
	}
	if m := nricFramedRE.FindStringSubmatch(upper); len(m) == 2 {
		return m[1], true
	}
	return "", false
}

// ---------- email ----------

var emailRE = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

// ExtractEmail finds the first address-shaped token, normalized to lowercase.
func ExtractEmail(text string) (string, bool) {
	if m := emailRE.FindString(text); m != "" {
		return strings.ToLower(m), true
	}
	return "", false
}

// ---------- name ----------

var nameRules = []*regexp.Regexp{
	// Explicit self-introduction: "I'm John Tan", "my name is John Tan".
	regexp.MustCompile(`(?:(?i:I'm|I am|My name is|Name is))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	// Two capitalized words directly before an identifier marker:
	// "John Tan, NRIC S1234567A".
	regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\s*,?\s*(?i:NRIC|IC)`),
}

var nameShapeRE = regexp.MustCompile(`^[A-Za-z\s]+$`)

// ExtractName tries self-introduction phrasings before the
// capitalized-words-before-NRIC heuristic. The matched span is re-capitalized
// word by word, then validated: alphabetic with spaces, 2–50 characters. A
// span that matched a pattern but fails validation is treated as absent.
func ExtractName(text string) (string, bool) {
	for _, re := range nameRules {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		candidate := recapitalizeName(m[1])
		if validName(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func recapitalizeName(raw string) string {
	words := strings.Fields(strings.TrimSpace(raw))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func validName(name string) bool {
	if len(name) < 2 || len(name) > 50 {
		return false
	}
	return nameShapeRE.MatchString(name)
}

// ---------- date ----------

// monthNames maps each month to its accepted spellings. Adding a spelling
// here automatically extends all three orderings below.
var monthNames = []struct {
	names []string
	month time.Month
}{
	{[]string{"January", "Jan"}, time.January},
	{[]string{"February", "Feb"}, time.February},
	{[]string{"March", "Mar"}, time.March},
	{[]string{"April", "Apr"}, time.April},
	{[]string{"May"}, time.May},
	{[]string{"June", "Jun"}, time.June},
	{[]string{"July", "Jul"}, time.July},
	{[]string{"August", "Aug"}, time.August},
	{[]string{"September", "Sept", "Sep"}, time.September},
	{[]string{"October", "Oct"}, time.October},
	{[]string{"November", "Nov"}, time.November},
	{[]string{"December", "Dec"}, time.December},
}

type dateRule struct {
	re    *regexp.Regexp
	month time.Month
}

var dateRules = buildDateRules()

func buildDateRules() []dateRule {
	var rules []dateRule
	for _, m := range monthNames {
		alt := strings.Join(m.names, "|")
		// "August 15"
		rules = append(rules, dateRule{
			re:    regexp.MustCompile(`(?i)\b(?:` + alt + `)\s+(\d{1,2})\b`),
			month: m.month,
		})
		// "15 August", which also covers "on 15 August"
		rules = append(rules, dateRule{
			re:    regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:` + alt + `)\b`),
			month: m.month,
		})
	}
	return rules
}

// ExtractDate matches "Month Day" or "Day Month" against the month table and
// resolves the result in the given booking year as YYYY-MM-DD. Days outside
// 1–31 and unparseable numbers are swallowed and treated as absent; no
// further calendar validation happens here (the finalizer does that).
func ExtractDate(text string, year int) (string, bool) {
	for _, rule := range dateRules {
		m := rule.re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		day, err := strconv.Atoi(m[1])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, rule.month, day), true
	}
	return "", false
}

// ---------- time ----------

var timeRules = []*regexp.Regexp{
	// "at 3pm", "at 3:30 pm"
	regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`),
	// bare "3pm", "3:30pm"
	regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`),
}

// ExtractTime matches "at H am/pm" before bare "H am/pm" and converts to a
// 24-hour HH:MM string. 12pm maps to 12:00 and 12am to 00:00; hours outside
// 1–12 or minutes outside 0–59 are treated as absent.
func ExtractTime(text string) (string, bool) {
	for _, re := range timeRules {
		m := re.FindStringSubmatch(text)
		if len(m) < 4 {
			continue
		}
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour < 1 || hour > 12 {
			continue
		}
		minute := 0
		if m[2] != "" {
			minute, err = strconv.Atoi(m[2])
			if err != nil || minute < 0 || minute > 59 {
				continue
			}
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}
	return "", false
}

// ---------- combined ----------

// ExtractAll runs every field extractor against the same utterance and
// collects the hits. Fields whose extractors found nothing are simply absent
// from the result.
func ExtractAll(text string, year int) ExtractionResult {
	result := ExtractionResult{}
	if v, ok := ExtractName(text); ok {
		result[FieldName] = v
	}
	if v, ok := ExtractNRIC(text); ok {
		result[FieldNRIC] = v
	}
	if v, ok := ExtractEmail(text); ok {
		result[FieldEmail] = v
	}
	if v, ok := ExtractDate(text, year); ok {
		result[FieldDate] = v
	}
	if v, ok := ExtractTime(text); ok {
		result[FieldTime] = v
	}
	return result
}
