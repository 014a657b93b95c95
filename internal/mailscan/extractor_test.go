package mailscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompanyAndRoleLinkedIn(t *testing.T) {
	t.Run("company from subject, role from text body", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:   "LinkedIn <jobs-noreply@linkedin.com>",
			Subject:  "Your application was sent to Acme Corp",
			TextBody: "Your application for Backend Engineer was sent to Acme Corp.",
		})

		assert.Equal(t, "Acme Corp", f.Company)
		assert.Equal(t, "Backend Engineer", f.Role)
		assert.Equal(t, strategyLinkedIn, f.CompanyStrategy)
		assert.Equal(t, strategyLinkedIn, f.RoleStrategy)
	})

	t.Run("role and company both in subject", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "LinkedIn <jobs-noreply@linkedin.com>",
			Subject: "You applied to Software Engineer at Initech",
		})

		assert.Equal(t, "Initech", f.Company)
		assert.Equal(t, "Software Engineer", f.Role)
	})

	t.Run("company only, trailing punctuation stripped", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "LinkedIn <jobs-noreply@linkedin.com>",
			Subject: "You applied to Hooli.",
		})

		assert.Equal(t, "Hooli", f.Company)
		assert.Equal(t, Unknown, f.Role)
	})

	t.Run("role recovered from markup-wrapped html body", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:   "LinkedIn <jobs-noreply@linkedin.com>",
			Subject:  "Your application was sent to Globex",
			HTMLBody: "<p>You applied for <b>Data Analyst</b> on March 3.</p>",
		})

		assert.Equal(t, "Globex", f.Company)
		assert.Equal(t, "Data Analyst", f.Role)
	})

	t.Run("board name replaced by label", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "LinkedIn <jobs-noreply@linkedin.com>",
			Subject: "Your application was sent to LinkedIn",
		})

		assert.Equal(t, JobBoardLabel, f.Company)
	})
}

func TestExtractCompanyAndRoleATS(t *testing.T) {
	t.Run("application received for role at company", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "Initech Careers <no-reply@initech.example>",
			Subject: "Application received for Platform Engineer at Initech",
		})

		assert.Equal(t, "Initech", f.Company)
		assert.Equal(t, "Platform Engineer", f.Role)
		assert.Equal(t, strategyATSSubject, f.CompanyStrategy)
		assert.Equal(t, strategyATSSubject, f.RoleStrategy)
	})

	t.Run("separator-delimited interview subject", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "Globex Recruiting <talent@globex.example>",
			Subject: "Interview invitation – Data Analyst at Globex",
		})

		assert.Equal(t, "Globex", f.Company)
		assert.Equal(t, "Data Analyst", f.Role)
	})

	t.Run("thanks for applying resolves company only", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "Hooli <careers@hooli.example>",
			Subject: "Thank you for applying to Hooli!",
		})

		assert.Equal(t, "Hooli", f.Company)
		assert.Equal(t, Unknown, f.Role)
	})
}

func TestExtractCompanyAndRoleBodyFallbacks(t *testing.T) {
	t.Run("position-of phrase truncated at stop token", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:   "Globex <careers@globex.example>",
			Subject:  "Thank you for applying to Globex",
			TextBody: "We received your application for the position of Data Scientist, and our team will review it shortly.",
		})

		assert.Equal(t, "Globex", f.Company)
		assert.Equal(t, "Data Scientist", f.Role)
		assert.Equal(t, strategyBodyRole, f.RoleStrategy)
	})

	t.Run("over-captured role cut at employer mention", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:   "Initech <careers@initech.example>",
			Subject:  "Thank you for applying to Initech",
			TextBody: "You applied for the Senior Engineer at our Berlin office position recently.",
		})

		assert.Equal(t, "Initech", f.Company)
		assert.Equal(t, "Senior Engineer", f.Role)
	})

	t.Run("generic application-to subject", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "no-reply@initech.example",
			Subject: "Your application to Initech",
		})

		assert.Equal(t, "Initech", f.Company)
		assert.Equal(t, strategyApplicationTo, f.CompanyStrategy)
	})
}

func TestExtractCompanyAndRoleDisplayName(t *testing.T) {
	t.Run("display name used as last resort", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  `"Umbrella Corporation" <careers@umbrella.example>`,
			Subject: "We received your application",
		})

		assert.Equal(t, "Umbrella Corporation", f.Company)
		assert.Equal(t, strategyDisplayName, f.CompanyStrategy)
	})

	t.Run("generic mailbox name rejected", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  `"Support Team" <help@service.example>`,
			Subject: "We received your application",
		})

		assert.Equal(t, Unknown, f.Company)
	})

	t.Run("bare address has no display name", func(t *testing.T) {
		f := ExtractCompanyAndRole(RawEmail{
			Sender:  "careers@umbrella.example",
			Subject: "We received your application",
		})

		assert.Equal(t, Unknown, f.Company)
	})
}

func TestExtractCompanyAndRoleWhitespace(t *testing.T) {
	f := ExtractCompanyAndRole(RawEmail{
		Sender:  "Acme <careers@acme.example>",
		Subject: "Thank you for applying to Acme   Staffing \t Group",
	})

	assert.Equal(t, "Acme Staffing Group", f.Company)
}

func TestGenericRoleFallback(t *testing.T) {
	assert.Equal(t, "Intern", GenericRoleFallback("Summer intern program", ""))
	assert.Equal(t, "Engineer", GenericRoleFallback("Your application", "We are reviewing engineer candidates"))
	assert.Equal(t, "Analyst", GenericRoleFallback("", "analyst opening in our Pune office"))
	assert.Equal(t, "", GenericRoleFallback("Your application", "no profession mentioned"))
}

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		status StatusTag
		want   int
	}{
		{
			name:   "subject strategies for both fields",
			fields: Fields{CompanyStrategy: strategyLinkedIn, RoleStrategy: strategyLinkedIn},
			status: StatusApplied,
			want:   84,
		},
		{
			name:   "specific status adds and clamps at upper bound",
			fields: Fields{CompanyStrategy: strategyATSSubject, RoleStrategy: strategyATSSubject},
			status: StatusInterview,
			want:   89,
		},
		{
			name:   "generic subject company only",
			fields: Fields{CompanyStrategy: strategyApplicationTo},
			status: StatusApplied,
			want:   70,
		},
		{
			name:   "display name fallback scores lowest",
			fields: Fields{CompanyStrategy: strategyDisplayName},
			status: StatusApplied,
			want:   64,
		},
		{
			name:   "body role adds a moderate bonus",
			fields: Fields{CompanyStrategy: strategyATSSubject, RoleStrategy: strategyBodyRole},
			status: StatusApplied,
			want:   80,
		},
		{
			name:   "baseline with no strategy attribution",
			fields: Fields{},
			status: StatusApplied,
			want:   62,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreConfidence(tt.fields, tt.status))
		})
	}
}
