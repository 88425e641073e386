package intake

import "strings"

// bookingKeywords are the explicit booking-action words.
var bookingKeywords = []string{"book", "appointment", "schedule", "reserve"}

// DetectBookingIntent decides whether an utterance should route into the
// slot-filling path: an NRIC-shaped token, an email-shaped token, or a
// booking keyword is enough. A cheap OR-gate, evaluated only after the
// safety gate allowed the utterance. Stickiness for in-progress bookings is
// the turn service's policy, not re-derived here.
func DetectBookingIntent(utterance string) bool {
	if _, ok := ExtractNRIC(utterance); ok {
		return true
	}
	if _, ok := ExtractEmail(utterance); ok {
		return true
	}
	lower := strings.ToLower(utterance)
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
