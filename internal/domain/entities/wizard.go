package entities

// WizardStep identifies one wizard screen. Steps are ordered; the terminal
// submitted screen is the last index.
type WizardStep int

const (
	StepBusinessInfo WizardStep = iota
	StepRegistrationInfo
	StepDocuments
	StepRepresentativeCapture
	StepRepresentativeSummary
	StepEmailContacts
	StepReview
	StepSubmitted
)

// String returns the step's wire name
func (s WizardStep) String() string {
	switch s {
	case StepBusinessInfo:
		return "business_info"
	case StepRegistrationInfo:
		return "registration_info"
	case StepDocuments:
		return "documents"
	case StepRepresentativeCapture:
		return "representative_capture"
	case StepRepresentativeSummary:
		return "representative_summary"
	case StepEmailContacts:
		return "email_contacts"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Screen is a top-level screen selection derived from compliance status
type Screen string

const (
	ScreenWizard      Screen = "wizard"
	ScreenStatus      Screen = "status"
	ScreenUnderReview Screen = "under_review"
)
