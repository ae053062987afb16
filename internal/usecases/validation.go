package usecases

import (
	"net/mail"
	"net/url"
	"strings"
	"time"

	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
)

const minBusinessDescriptionLen = 100

// validateBusinessInfo checks the first wizard step. A failure blocks the
// advance locally; no network call is made.
func validateBusinessInfo(d *entities.ComplianceDraft) error {
	fields := make(map[string]string)

	required := map[string]string{
		"legalBusinessName":    d.LegalBusinessName,
		"tradingName":          d.TradingName,
		"businessDescription":  d.BusinessDescription,
		"businessCategory":     d.BusinessCategory,
		"projectedSalesVolume": d.ProjectedSalesVolume,
		"merchantAddress":      d.MerchantAddress,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = "this field is required"
		}
	}

	if desc := strings.TrimSpace(d.BusinessDescription); desc != "" && len(desc) < minBusinessDescriptionLen {
		fields["businessDescription"] = "description must be at least 100 characters"
	}

	if site := strings.TrimSpace(d.Website); site != "" {
		u, err := url.Parse(site)
		if err != nil || u.Scheme == "" || u.Host == "" {
			fields["website"] = "website must be a valid URL"
		}
	}

	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}
	return nil
}

// validateOwner checks a representative before it is captured. All fields in
// the required subset must be non-empty, the ownership percentage numeric,
// and the representative at least 18 years old.
func validateOwner(o *entities.Owner) error {
	fields := make(map[string]string)

	required := map[string]string{
		"firstName":          o.FirstName,
		"lastName":           o.LastName,
		"mobile":             o.Mobile,
		"verificationType":   o.VerificationType,
		"verificationNumber": o.VerificationNumber,
		"occupation":         o.Occupation,
		"address":            o.Address,
		"dob":                o.DOB,
		"nationality":        o.Nationality,
		"role":               o.Role,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = "this field is required"
		}
	}

	if o.PercentOfBusiness <= 0 || o.PercentOfBusiness > 100 {
		fields["percentOfBusiness"] = "ownership percentage must be between 0 and 100"
	}

	if dob := strings.TrimSpace(o.DOB); dob != "" {
		if age, ok := ageFromDOB(dob); !ok {
			fields["dob"] = "date of birth must be YYYY-MM-DD"
		} else if age < 18 {
			fields["dob"] = "representative must be at least 18 years old"
		}
	}

	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}
	return nil
}

// validateContactEmails checks the three contact addresses against basic
// address shape.
func validateContactEmails(d *entities.ComplianceDraft) error {
	fields := make(map[string]string)

	emails := map[string]string{
		"contactEmail": d.ContactEmail,
		"disputeEmail": d.DisputeEmail,
		"supportEmail": d.SupportEmail,
	}
	for name, value := range emails {
		if strings.TrimSpace(value) == "" {
			fields[name] = "this field is required"
			continue
		}
		if _, err := mail.ParseAddress(value); err != nil {
			fields[name] = "must be a valid email address"
		}
	}

	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}
	return nil
}

func ageFromDOB(dob string) (int, bool) {
	t, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0, false
	}
	now := time.Now()
	age := now.Year() - t.Year()
	if now.YearDay() < t.YearDay() {
		age--
	}
	return age, true
}
