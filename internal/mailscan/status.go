package mailscan

import (
	"fmt"
	"strings"
)

// StatusTag is the classified lifecycle stage of a job application.
type StatusTag string

const (
	StatusApplied   StatusTag = "Applied"
	StatusHiring    StatusTag = "Hiring"
	StatusInterview StatusTag = "Interview"
	StatusOffer     StatusTag = "Offer"
	StatusRejected  StatusTag = "Rejected"
)

// ParseStatus converts a raw string to a StatusTag, returning an error for
// unknown values.
func ParseStatus(s string) (StatusTag, error) {
	st := StatusTag(s)
	switch st {
	case StatusApplied, StatusHiring, StatusInterview, StatusOffer, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// ClassifyStatus maps subject/body keyword signals to a StatusTag. The gates
// run in a fixed precedence order and the first match wins; an email that
// matches nothing is a plain application confirmation.
//
// Interview is gated twice at different specificity levels: explicit
// interview phrasing outranks Offer and Rejected, while the broader
// assessment/round signals are checked only after them. An email mentioning
// both "assessment" and a job offer therefore resolves to Offer.
func ClassifyStatus(subject, body string) StatusTag {
	text := strings.ToLower(subject + " " + body)

	switch {
	case containsAny(text, hiringSignals):
		return StatusHiring
	case containsAny(text, interviewSignals):
		return StatusInterview
	case containsAny(text, offerSignals):
		return StatusOffer
	case containsAny(text, rejectionSignals):
		return StatusRejected
	case containsAny(text, assessmentSignals):
		return StatusInterview
	}
	return StatusApplied
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
