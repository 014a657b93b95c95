package mailscan

// Keyword sets driving the classifier, status gates and validity gate.
// They are plain data so gate behavior can be tested in isolation from the
// extraction logic. All matching is lower-cased substring matching.

// negativeKeywords reject a message outright before any positive signal is
// considered. Financial, security, social and promotional mail dominates the
// false-positive space for job keywords ("offer", "application", "position").
var negativeKeywords = []string{
	"invoice",
	"payment due",
	"bank statement",
	"credit card",
	"transaction alert",
	"account balance",
	"loan approved",
	"lottery",
	"you won",
	"password reset",
	"verification code",
	"security alert",
	"sign-in attempt",
	"two-factor",
	"friend request",
	"started following you",
	"tagged you",
	"commented on your",
	"free trial",
	"flash sale",
	"discount code",
	"coupon",
	"limited time offer",
}

// positiveKeywords must produce at least one hit for a message to be
// considered plausibly job related.
var positiveKeywords = []string{
	"application",
	"applied",
	"applying",
	"interview",
	"recruiter",
	"recruiting",
	"recruitment",
	"talent",
	"hiring",
	"job",
	"position",
	"candidate",
	"candidature",
	"resume",
	"opportunity",
	"assessment",
	"offer letter",
	"career",
}

// hiringSignals mark job-posting notifications rather than progress on an
// existing application.
var hiringSignals = []string{
	"is hiring",
	"we are hiring",
	"we're hiring",
	"now hiring",
	"job openings",
	"open positions",
	"jobs for you",
	"new jobs",
	"job alert",
}

// interviewSignals are the explicit, high-specificity interview phrasings.
var interviewSignals = []string{
	"interview invitation",
	"interview invite",
	"interview scheduled",
	"interview confirmation",
	"schedule an interview",
	"schedule your interview",
	"invited to interview",
	"invite you to interview",
	"upcoming interview",
	"interview with",
}

// offerSignals require a compound employment signal; a bare "offer" is far
// more often promotional than an offer of employment.
var offerSignals = []string{
	"job offer",
	"offer letter",
	"offer of employment",
	"employment offer",
	"pleased to offer you",
	"happy to offer you",
	"extend an offer",
	"extend you an offer",
}

// rejectionSignals cover both explicit rejections and the soft boilerplate
// recruiters use instead of saying no.
var rejectionSignals = []string{
	"regret to inform",
	"unfortunately",
	"not been selected",
	"not selected for",
	"other candidates",
	"thank you for your interest",
	"not moving forward",
	"will not be moving forward",
	"decided to move forward with",
	"position has been filled",
	"pursue other applicants",
}

// assessmentSignals are the broader, lower-specificity interview stage
// signals checked after Offer and Rejected.
var assessmentSignals = []string{
	"assessment",
	"coding challenge",
	"coding test",
	"online test",
	"take-home",
	"hackathon",
	"next round",
	"technical round",
	"aptitude test",
	"screening round",
}

// blockedSenderFragments reject mail from newsletter, marketing, social and
// generic-messaging senders before extraction runs.
var blockedSenderFragments = []string{
	"newsletter",
	"marketing",
	"promotions",
	"facebook",
	"instagram",
	"twitter",
	"pinterest",
	"whatsapp",
	"telegram",
	"discord",
	"substack",
	"medium.com",
	"quora",
	"reddit",
}

// blockedSubjectTerms catch order, receipt and pharmacy mail that slips past
// the keyword classifier (an order confirmation can still mention "delivery
// job" or similar).
var blockedSubjectTerms = []string{
	"order",
	"receipt",
	"invoice",
	"delivery",
	"shipped",
	"shipment",
	"out for delivery",
	"tracking number",
	"refund",
	"medicine",
	"pharmacy",
	"prescription",
}

// blockedCompanyBrands override an otherwise successful extraction when the
// resolved company is an e-commerce or pharmacy brand. These senders mail
// order updates far more often than recruiting mail.
var blockedCompanyBrands = []string{
	"amazon",
	"flipkart",
	"walmart",
	"ebay",
	"myntra",
	"bigbasket",
	"swiggy",
	"zomato",
	"pharmeasy",
	"netmeds",
	"1mg",
	"apollo pharmacy",
}

// genericMailboxFragments disqualify a sender display name from being used
// as a company name.
var genericMailboxFragments = []string{
	"ticket",
	"support",
	"info",
	"@",
}
