// Package knowledge is the static stand-in for the clinic's informational
// question answering. It is consumed by the intake service as an external
// capability: a prioritized keyword table mapping topics to fixed responses.
package knowledge

import (
	"fmt"
	"strings"
)

// Info is the clinic identity rendered into responses. Values come from
// configuration so a deployment can rebrand without touching the table.
type Info struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// entry pairs a keyword set with its response template. Entries are checked
// in order; the first entry with any keyword hit wins.
type entry struct {
	keywords []string
	response string
}

// Responder answers non-booking clinic questions from a fixed topic table.
type Responder struct {
	entries  []entry
	fallback string
}

const servicesResponse = `Dr. Tan offers several therapy services:
- Individual Therapy: $120 (50 minutes)
- Couples Therapy: $180 (80 minutes)
- Family Therapy: $200 (90 minutes)
- Group Therapy: $60 (90 minutes)
- Online Therapy: $100 (50 minutes)

She specializes in CBT, DBT, anxiety, depression, and trauma treatment. Would you like to book an appointment?`

const hoursResponse = `Our clinic hours are:
- Monday-Friday: 9:00 AM - 7:00 PM
- Saturday: 9:00 AM - 5:00 PM
- Sunday: Closed

Would you like to book an appointment?`

const pricingResponse = `Our session fees are:
- Individual Therapy: $120 (50 minutes)
- Couples Therapy: $180 (80 minutes)
- Family Therapy: $200 (90 minutes)
- Group Therapy: $60 (90 minutes)
- Online Therapy: $100 (50 minutes)

Would you like to book an appointment?`

const credentialsResponse = `Dr. Sarah Tan is our lead therapist with:
- Ph.D. in Clinical Psychology from NUS
- 12 years of clinical experience
- Licensed Clinical Psychologist
- Certified in CBT and DBT
- Fluent in English, Mandarin, and Hokkien

She specializes in anxiety, depression, trauma, and relationship counseling. Would you like to book an appointment?`

// NewStaticResponder builds the responder with the clinic's knowledge table.
// Pricing is checked before services so "how much" questions that also
// mention therapy get the fee table.
func NewStaticResponder(info Info) *Responder {
	location := fmt.Sprintf(`We're located at:
%s
Phone: %s
Email: %s

Would you like to book an appointment?`, info.Address, info.Phone, info.Email)

	fallback := fmt.Sprintf(`I'm here to help with information about %s. I can tell you about:
- Our therapy services and pricing
- Dr. Tan's credentials and experience
- Clinic hours and location
- How to book an appointment

What would you like to know?`, info.Name)

	return &Responder{
		entries: []entry{
			{keywords: []string{"cost", "price", "fee", "much"}, response: pricingResponse},
			{keywords: []string{"service", "offer", "therapy", "treatment"}, response: servicesResponse},
			{keywords: []string{"hour", "open", "time", "when"}, response: hoursResponse},
			{keywords: []string{"where", "location", "address"}, response: location},
			{keywords: []string{"doctor", "dr", "tan", "therapist", "qualification", "credential"}, response: credentialsResponse},
		},
		fallback: fallback,
	}
}

// Answer returns the response for the first topic whose keywords appear in
// the utterance, or the fallback help text. Pure lookup, no side effects.
func (r *Responder) Answer(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, e := range r.entries {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return e.response
			}
		}
	}
	return r.fallback
}
