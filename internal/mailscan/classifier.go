package mailscan

import "strings"

// IsJobEmail decides whether a message is plausibly job related from its
// subject and snippet alone. The negative gate strictly precedes and
// short-circuits the positive gate: a message containing both a negative and
// a positive keyword is rejected.
func IsJobEmail(subject, snippet string) bool {
	text := strings.ToLower(subject + " " + snippet)

	if containsAny(text, negativeKeywords) {
		return false
	}
	return containsAny(text, positiveKeywords)
}
