package mailscan

import (
	"strings"
	"time"
)

// ValidityGate is the secondary filter catching promotional, e-commerce and
// stale mail that slipped past the keyword classifier. Sender and subject
// checks run before extraction; the company check runs mid-pipeline after a
// tentative company is resolved, so it can override an otherwise successful
// extraction.
type ValidityGate struct {
	// MinYear rejects messages received before this calendar year. Guards
	// against backfilling records from ancient mail during a full rescan.
	MinYear int
}

// DefaultMinEmailYear is the stale-mail cutoff applied when no explicit
// configuration is given.
const DefaultMinEmailYear = 2023

// NewValidityGate builds a gate with the given minimum year, falling back to
// DefaultMinEmailYear when minYear is zero.
func NewValidityGate(minYear int) ValidityGate {
	if minYear == 0 {
		minYear = DefaultMinEmailYear
	}
	return ValidityGate{MinYear: minYear}
}

// BlockedSender reports whether mail from this sender is categorically not
// application mail (newsletters, marketing blasts, social platforms).
func (g ValidityGate) BlockedSender(sender string) bool {
	return containsAny(strings.ToLower(sender), blockedSenderFragments)
}

// BlockedSubject reports whether the subject marks order, receipt, delivery
// or pharmacy mail.
func (g ValidityGate) BlockedSubject(subject string) bool {
	return containsAny(strings.ToLower(subject), blockedSubjectTerms)
}

// BlockedCompany reports whether a resolved company name matches a known
// e-commerce or pharmacy brand.
func (g ValidityGate) BlockedCompany(company string) bool {
	return containsAny(strings.ToLower(company), blockedCompanyBrands)
}

// Stale reports whether the message predates the minimum year threshold.
func (g ValidityGate) Stale(receivedAt time.Time) bool {
	return receivedAt.Year() < g.MinYear
}
