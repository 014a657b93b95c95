package mailscan

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fields is the extractor's result. Company and Role default to Unknown; the
// strategy names record which strategy resolved each field and feed the
// confidence score.
type Fields struct {
	Company         string
	Role            string
	CompanyStrategy string
	RoleStrategy    string
}

// Strategy names. Subject-level strategies are more trustworthy than body or
// sender fallbacks, which the confidence scoring reflects.
const (
	strategyLinkedIn      = "linkedin-notification"
	strategyATSSubject    = "ats-subject"
	strategyBodyRole      = "body-role"
	strategyApplicationTo = "application-to"
	strategyDisplayName   = "sender-display-name"
)

// fieldStrategy resolves company and/or role from one signal source. It
// receives the values resolved so far and returns empty strings for fields it
// cannot resolve. Strategies never overwrite: the driver only takes a
// returned value for a field that is still Unknown.
type fieldStrategy struct {
	name  string
	apply func(e RawEmail, company, role string) (string, string)
}

// fieldStrategies is an ordered chain; order is a deliberate precedence.
// Sender-specific patterns outrank generic ATS subjects, which outrank body
// and sender fallbacks.
var fieldStrategies = []fieldStrategy{
	{strategyLinkedIn, linkedInStrategy},
	{strategyATSSubject, atsSubjectStrategy},
	{strategyBodyRole, bodyRoleStrategy},
	{strategyApplicationTo, applicationToStrategy},
	{strategyDisplayName, displayNameStrategy},
}

// ExtractCompanyAndRole runs the strategy chain over a message. The first
// strategy to resolve a field wins that field; extraction for a field stops
// once it is set.
func ExtractCompanyAndRole(e RawEmail) Fields {
	f := Fields{Company: Unknown, Role: Unknown}

	for _, s := range fieldStrategies {
		c, r := s.apply(e, f.Company, f.Role)
		if f.Company == Unknown && c != "" {
			f.Company = cleanText(c)
			f.CompanyStrategy = s.name
		}
		if f.Role == Unknown && r != "" {
			f.Role = cleanText(r)
			f.RoleStrategy = s.name
		}
		if f.Company != Unknown && f.Role != Unknown {
			break
		}
	}

	// A LinkedIn notification sometimes resolves the board itself where the
	// employer should be.
	if f.Company != Unknown && strings.Contains(strings.ToLower(f.Company), "linkedin") {
		f.Company = JobBoardLabel
	}

	// Role strategies occasionally over-capture "<role> at <company>".
	if f.Role != Unknown {
		if idx := strings.Index(f.Role, " at "); idx > 0 {
			f.Role = strings.TrimSpace(f.Role[:idx])
		}
	}

	return f
}

var (
	// LinkedIn notification subject variants.
	reLISentTo    = regexp.MustCompile(`(?i)your application was sent to\s+(.+?)\s*$`)
	reLIAppliedAt = regexp.MustCompile(`(?i)you applied to\s+(.+?)\s+at\s+(.+?)\s*$`)
	reLIAppliedTo = regexp.MustCompile(`(?i)you applied to\s+(.+?)[.!]?\s*$`)

	// Body complements for LinkedIn mail that only names the company in the
	// subject. The tag-bounded variant handles role names wrapped in markup.
	reBodyApplicationFor = regexp.MustCompile(`(?i)(?:your application for|applied for)\s+(.+?)\s+was sent`)
	reHTMLAppliedFor     = regexp.MustCompile(`(?i)applied for\s*(?:<[^>]+>\s*)+([^<]+)<`)

	// Generic ATS subject patterns.
	reATSReceivedFor   = regexp.MustCompile(`(?i)application received for\s+(.+?)\s+at\s+(.+?)\s*$`)
	reATSThanksApply   = regexp.MustCompile(`(?i)thank you for applying to\s+(.+?)[.!]?\s*$`)
	reSubjectRoleAtCo  = regexp.MustCompile(`(?i)[–—:-]\s*([^–—:-]+?)\s+at\s+(.+?)\s*$`)
	reYourAppTo        = regexp.MustCompile(`(?i)your application to\s+(.+?)[.!]?\s*$`)
	rePositionOf       = regexp.MustCompile(`(?i)(?:position|role) of\s+(.+)`)
	reForTheXPosition  = regexp.MustCompile(`(?i)for the\s+(.+?)\s+position`)
	reWhitespace       = regexp.MustCompile(`\s+`)
	bodyRoleStopTokens = []string{".", ",", "\n", " at ", " with ", " for "}
)

// linkedInStrategy handles the professional network's standard notification
// phrasings. If a subject variant resolves only the company, the body is
// searched for a complementary "applied for <role>" phrase.
func linkedInStrategy(e RawEmail, company, role string) (string, string) {
	if !strings.Contains(strings.ToLower(e.Sender), "linkedin") {
		return "", ""
	}
	subject := strings.TrimSpace(e.Subject)

	if m := reLIAppliedAt.FindStringSubmatch(subject); m != nil {
		return m[2], m[1]
	}

	var c string
	if m := reLISentTo.FindStringSubmatch(subject); m != nil {
		c = m[1]
	} else if m := reLIAppliedTo.FindStringSubmatch(subject); m != nil {
		c = m[1]
	}
	if c == "" {
		return "", ""
	}

	// Company resolved from the subject alone; look for the role in the body.
	if m := reBodyApplicationFor.FindStringSubmatch(e.TextBody); m != nil {
		return c, m[1]
	}
	if m := reHTMLAppliedFor.FindStringSubmatch(e.HTMLBody); m != nil {
		return c, m[1]
	}
	if text := htmlToText(e.HTMLBody); text != "" {
		if m := reBodyApplicationFor.FindStringSubmatch(text); m != nil {
			return c, m[1]
		}
	}
	return c, ""
}

// atsSubjectStrategy matches the subject formats shared by most applicant
// tracking systems.
func atsSubjectStrategy(e RawEmail, company, role string) (string, string) {
	subject := strings.TrimSpace(e.Subject)

	if m := reATSReceivedFor.FindStringSubmatch(subject); m != nil {
		return m[2], m[1]
	}
	if m := reATSThanksApply.FindStringSubmatch(subject); m != nil {
		return m[1], ""
	}
	// "Interview invitation – Data Analyst at Globex" and similar
	// separator-delimited subjects.
	if m := reSubjectRoleAtCo.FindStringSubmatch(subject); m != nil {
		return m[2], m[1]
	}
	return "", ""
}

// bodyRoleStrategy searches the body for the role once the company is known.
func bodyRoleStrategy(e RawEmail, company, role string) (string, string) {
	if company == Unknown || role != Unknown {
		return "", ""
	}
	body := bodyText(e)

	if m := rePositionOf.FindStringSubmatch(body); m != nil {
		if r := truncateAtStopToken(m[1]); r != "" {
			return "", r
		}
	}
	if m := reForTheXPosition.FindStringSubmatch(body); m != nil {
		return "", m[1]
	}
	return "", ""
}

// applicationToStrategy is the generic catch-all for subjects like
// "Your application to Initech", used only when nothing else matched.
func applicationToStrategy(e RawEmail, company, role string) (string, string) {
	if company != Unknown || role != Unknown {
		return "", ""
	}
	if m := reYourAppTo.FindStringSubmatch(strings.TrimSpace(e.Subject)); m != nil {
		return m[1], ""
	}
	return "", ""
}

// displayNameStrategy falls back to the sender's display name, rejecting
// anything that looks like a generic mailbox.
func displayNameStrategy(e RawEmail, company, role string) (string, string) {
	if company != Unknown {
		return "", ""
	}
	name := senderDisplayName(e.Sender)
	if name == "" {
		return "", ""
	}
	if containsAny(strings.ToLower(name), genericMailboxFragments) {
		return "", ""
	}
	return name, ""
}

// senderDisplayName parses the `"Display Name" <addr>` header format,
// returning an empty string when the header carries a bare address.
func senderDisplayName(sender string) string {
	idx := strings.Index(sender, "<")
	if idx <= 0 {
		return ""
	}
	name := strings.TrimSpace(sender[:idx])
	name = strings.Trim(name, `"'`)
	return strings.TrimSpace(name)
}

// truncateAtStopToken cuts a captured role at the earliest stop token so
// open-ended patterns do not swallow the rest of the sentence.
func truncateAtStopToken(s string) string {
	cut := len(s)
	for _, tok := range bodyRoleStopTokens {
		if idx := strings.Index(s, tok); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(s[:cut])
}

// genericRoleLabels convert a still-unknown role to a coarse label when the
// mail clearly references a profession. Checked in order.
var genericRoleLabels = []struct {
	keyword string
	label   string
}{
	{"intern", "Intern"},
	{"engineer", "Engineer"},
	{"developer", "Developer"},
	{"analyst", "Analyst"},
	{"scientist", "Scientist"},
	{"designer", "Designer"},
	{"manager", "Manager"},
	{"consultant", "Consultant"},
}

// GenericRoleFallback resolves a coarse role label from profession keywords
// in the subject or body. Returns an empty string when nothing matches, in
// which case the record is discarded.
func GenericRoleFallback(subject, body string) string {
	text := strings.ToLower(subject + " " + body)
	for _, g := range genericRoleLabels {
		if strings.Contains(text, g.keyword) {
			return g.label
		}
	}
	return ""
}

// ScoreConfidence derives the record's confidence from how the fields were
// resolved. Subject-level strategies score higher than fallbacks; a specific
// status adds a little. The result is clamped to [60, 89].
func ScoreConfidence(f Fields, status StatusTag) int {
	score := 62

	switch f.CompanyStrategy {
	case strategyLinkedIn, strategyATSSubject:
		score += 12
	case strategyApplicationTo:
		score += 8
	case strategyDisplayName:
		score += 2
	}
	switch f.RoleStrategy {
	case strategyLinkedIn, strategyATSSubject:
		score += 10
	case strategyBodyRole:
		score += 6
	}
	if status != StatusApplied {
		score += 5
	}

	if score < 60 {
		score = 60
	}
	if score > 89 {
		score = 89
	}
	return score
}

// bodyText returns the plain-text body, falling back to stripping the HTML
// body when no text part exists.
func bodyText(e RawEmail) string {
	if strings.TrimSpace(e.TextBody) != "" {
		return e.TextBody
	}
	return htmlToText(e.HTMLBody)
}

// htmlToText strips markup from an HTML part.
func htmlToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return doc.Text()
}

// cleanText collapses whitespace runs and trims, so extracted values compare
// cleanly during duplicate detection.
func cleanText(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
