package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TotalWizardSteps is the number of wizard screens, including the terminal
// submitted screen. Progress counts completed steps (0..TotalWizardSteps).
const TotalWizardSteps = 8

// Owner is a business representative/director captured during onboarding.
// Owners carry a stable generated ID; edit and remove operate by ID so that
// concurrent list mutations cannot shift an in-flight edit onto the wrong
// entry.
type Owner struct {
	ID                 uuid.UUID `json:"id"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Mobile             string    `json:"mobile"`
	VerificationType   string    `json:"verificationType"`
	VerificationNumber string    `json:"verificationNumber"`
	Occupation         string    `json:"occupation"`
	PercentOfBusiness  float64   `json:"percentOfBusiness"`
	Address            string    `json:"address"`
	DOB                string    `json:"dob"`
	Nationality        string    `json:"nationality"`
	Role               string    `json:"role"`
	BVN                string    `json:"bvn,omitempty"`
}

// ComplianceDraft is the locally owned, durable, in-progress compliance
// submission. StepIndex is UI-local and may run ahead of Progress while work
// is unsaved; Progress only advances on confirmed server acknowledgment and
// never regresses except via Reset.
type ComplianceDraft struct {
	MerchantCode string `json:"merchantCode"`
	Progress     int    `json:"progress"`
	StepIndex    int    `json:"stepIndex"`

	// Core business info
	LegalBusinessName               string      `json:"legalBusinessName"`
	TradingName                     string      `json:"tradingName"`
	BusinessDescription             string      `json:"businessDescription"`
	BusinessCategory                string      `json:"businessCategory"`
	ProjectedSalesVolume            string      `json:"projectedSalesVolume"`
	MerchantAddress                 string      `json:"merchantAddress"`
	RCNumber                        string      `json:"rcNumber"`
	CountryCode                     string      `json:"countryCode"`
	IncorporationDate               string      `json:"incorporationDate"`
	BusinessCommencementDate        string      `json:"businessCommencementDate"`
	OwnershipType                   string      `json:"ownershipType"`
	StaffStrength                   null.Int    `json:"staffStrength"`
	NumberOfLocations               null.Int    `json:"numberOfLocations"`
	Bankrupcy                       null.Bool   `json:"bankrupcy"`
	BankrupcyReason                 string      `json:"bankrupcyReason"`
	RelationshipWithAcquirer        null.Bool   `json:"relationshipWithAcquirer"`
	ReasonForTerminationRelationsip string      `json:"reasonForTerminationRelationsip"`
	Politics                        null.Bool   `json:"politics"`
	ProductPriceRange               string      `json:"productPriceRange"`
	CardAcceptanceType              string      `json:"cardAcceptanceType"`
	Website                         string      `json:"website"`

	// Banking & financial
	AccountName          string    `json:"accountName"`
	AccountNumber        string    `json:"accountNumber"`
	AccountType          string    `json:"accountType"`
	BVN                  string    `json:"bvn"`
	BankName             string    `json:"bankName"`
	SwiftCode            string    `json:"swiftCode"`
	TIN                  string    `json:"tin"`
	PCIDSSCompliant      null.Bool `json:"pciDssCompliant"`
	Uses3DSecure         null.Bool `json:"uses3dSecure"`
	DataProtectionPolicy null.Bool `json:"dataProtectionPolicy"`

	// Contacts
	ContactEmail string `json:"contactEmail"`
	DisputeEmail string `json:"disputeEmail"`
	SupportEmail string `json:"supportEmail"`

	// Principal identity
	DOB                string       `json:"dob"`
	Nationality        string       `json:"nationality"`
	Role               string       `json:"role"`
	PercentOfBusiness  null.Float64 `json:"percentOfBusiness"`
	IdentificationType string       `json:"identificationType"`
	IdentityNumber     string       `json:"identityNumber"`
	ResidentialAddress string       `json:"residentialAddress"`
	NIN                string       `json:"nin"`

	// Uploaded document payloads, base64-encoded until transfer
	CertificateOfIncorporation      string `json:"certificate_of_incorporation,omitempty"`
	StatusReport                    string `json:"status_report,omitempty"`
	DirectorID                      string `json:"director_id,omitempty"`
	UtilityBill                     string `json:"utility_bill,omitempty"`
	TaxClearance                    string `json:"tax_clearance,omitempty"`
	DeclarationStatement            string `json:"declaration_statement,omitempty"`
	FinancialHistory                string `json:"financial_history,omitempty"`
	DeliveryPolicy                  string `json:"delivery_policy,omitempty"`
	ReturnCreditPolicy              string `json:"return_credit_policy,omitempty"`
	ProhibitedActivitiesDeclaration string `json:"prohibited_activities_declaration,omitempty"`
	BricksAndMortarAgreement        string `json:"bricks_and_mortar_agreement,omitempty"`
	WebMerchantsAgreement           string `json:"web_merchants_agreement,omitempty"`
	MemorandumAndArticles           string `json:"memorandum_and_articles,omitempty"`

	Owners []Owner `json:"owners"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmptyDraft returns the default draft for a merchant: all scalar fields
// empty, no owners, progress and step index at zero.
func EmptyDraft(merchantCode string) *ComplianceDraft {
	return &ComplianceDraft{
		MerchantCode: merchantCode,
		Owners:       []Owner{},
	}
}

// FindOwner returns the owner with the given ID, or nil.
func (d *ComplianceDraft) FindOwner(id uuid.UUID) *Owner {
	for i := range d.Owners {
		if d.Owners[i].ID == id {
			return &d.Owners[i]
		}
	}
	return nil
}

// DraftPatch is a partial field set merged into a draft. Nil-able wrappers
// distinguish "not supplied" from "set to empty"; unspecified fields are left
// untouched (last-write-wins per field).
type DraftPatch struct {
	LegalBusinessName               *string      `json:"legalBusinessName,omitempty"`
	TradingName                     *string      `json:"tradingName,omitempty"`
	BusinessDescription             *string      `json:"businessDescription,omitempty"`
	BusinessCategory                *string      `json:"businessCategory,omitempty"`
	ProjectedSalesVolume            *string      `json:"projectedSalesVolume,omitempty"`
	MerchantAddress                 *string      `json:"merchantAddress,omitempty"`
	RCNumber                        *string      `json:"rcNumber,omitempty"`
	CountryCode                     *string      `json:"countryCode,omitempty"`
	IncorporationDate               *string      `json:"incorporationDate,omitempty"`
	BusinessCommencementDate        *string      `json:"businessCommencementDate,omitempty"`
	OwnershipType                   *string      `json:"ownershipType,omitempty"`
	StaffStrength                   *int64       `json:"staffStrength,omitempty"`
	NumberOfLocations               *int64       `json:"numberOfLocations,omitempty"`
	Bankrupcy                       *bool        `json:"bankrupcy,omitempty"`
	BankrupcyReason                 *string      `json:"bankrupcyReason,omitempty"`
	RelationshipWithAcquirer        *bool        `json:"relationshipWithAcquirer,omitempty"`
	ReasonForTerminationRelationsip *string      `json:"reasonForTerminationRelationsip,omitempty"`
	Politics                        *bool        `json:"politics,omitempty"`
	ProductPriceRange               *string      `json:"productPriceRange,omitempty"`
	CardAcceptanceType              *string      `json:"cardAcceptanceType,omitempty"`
	Website                         *string      `json:"website,omitempty"`
	AccountName                     *string      `json:"accountName,omitempty"`
	AccountNumber                   *string      `json:"accountNumber,omitempty"`
	AccountType                     *string      `json:"accountType,omitempty"`
	BVN                             *string      `json:"bvn,omitempty"`
	BankName                        *string      `json:"bankName,omitempty"`
	SwiftCode                       *string      `json:"swiftCode,omitempty"`
	TIN                             *string      `json:"tin,omitempty"`
	PCIDSSCompliant                 *bool        `json:"pciDssCompliant,omitempty"`
	Uses3DSecure                    *bool        `json:"uses3dSecure,omitempty"`
	DataProtectionPolicy            *bool        `json:"dataProtectionPolicy,omitempty"`
	ContactEmail                    *string      `json:"contactEmail,omitempty"`
	DisputeEmail                    *string      `json:"disputeEmail,omitempty"`
	SupportEmail                    *string      `json:"supportEmail,omitempty"`
	DOB                             *string      `json:"dob,omitempty"`
	Nationality                     *string      `json:"nationality,omitempty"`
	Role                            *string      `json:"role,omitempty"`
	PercentOfBusiness               *float64     `json:"percentOfBusiness,omitempty"`
	IdentificationType              *string      `json:"identificationType,omitempty"`
	IdentityNumber                  *string      `json:"identityNumber,omitempty"`
	ResidentialAddress              *string      `json:"residentialAddress,omitempty"`
	NIN                             *string      `json:"nin,omitempty"`
	CertificateOfIncorporation      *string      `json:"certificate_of_incorporation,omitempty"`
	StatusReport                    *string      `json:"status_report,omitempty"`
	DirectorID                      *string      `json:"director_id,omitempty"`
	UtilityBill                     *string      `json:"utility_bill,omitempty"`
	TaxClearance                    *string      `json:"tax_clearance,omitempty"`
	DeclarationStatement            *string      `json:"declaration_statement,omitempty"`
	FinancialHistory                *string      `json:"financial_history,omitempty"`
	DeliveryPolicy                  *string      `json:"delivery_policy,omitempty"`
	ReturnCreditPolicy              *string      `json:"return_credit_policy,omitempty"`
	ProhibitedActivitiesDeclaration *string      `json:"prohibited_activities_declaration,omitempty"`
	BricksAndMortarAgreement        *string      `json:"bricks_and_mortar_agreement,omitempty"`
	WebMerchantsAgreement           *string      `json:"web_merchants_agreement,omitempty"`
	MemorandumAndArticles           *string      `json:"memorandum_and_articles,omitempty"`
}

// Apply merges the patch into the draft, field by field.
func (p *DraftPatch) Apply(d *ComplianceDraft) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&d.LegalBusinessName, p.LegalBusinessName)
	setStr(&d.TradingName, p.TradingName)
	setStr(&d.BusinessDescription, p.BusinessDescription)
	setStr(&d.BusinessCategory, p.BusinessCategory)
	setStr(&d.ProjectedSalesVolume, p.ProjectedSalesVolume)
	setStr(&d.MerchantAddress, p.MerchantAddress)
	setStr(&d.RCNumber, p.RCNumber)
	setStr(&d.CountryCode, p.CountryCode)
	setStr(&d.IncorporationDate, p.IncorporationDate)
	setStr(&d.BusinessCommencementDate, p.BusinessCommencementDate)
	setStr(&d.OwnershipType, p.OwnershipType)
	setStr(&d.BankrupcyReason, p.BankrupcyReason)
	setStr(&d.ReasonForTerminationRelationsip, p.ReasonForTerminationRelationsip)
	setStr(&d.ProductPriceRange, p.ProductPriceRange)
	setStr(&d.CardAcceptanceType, p.CardAcceptanceType)
	setStr(&d.Website, p.Website)
	setStr(&d.AccountName, p.AccountName)
	setStr(&d.AccountNumber, p.AccountNumber)
	setStr(&d.AccountType, p.AccountType)
	setStr(&d.BVN, p.BVN)
	setStr(&d.BankName, p.BankName)
	setStr(&d.SwiftCode, p.SwiftCode)
	setStr(&d.TIN, p.TIN)
	setStr(&d.ContactEmail, p.ContactEmail)
	setStr(&d.DisputeEmail, p.DisputeEmail)
	setStr(&d.SupportEmail, p.SupportEmail)
	setStr(&d.DOB, p.DOB)
	setStr(&d.Nationality, p.Nationality)
	setStr(&d.Role, p.Role)
	setStr(&d.IdentificationType, p.IdentificationType)
	setStr(&d.IdentityNumber, p.IdentityNumber)
	setStr(&d.ResidentialAddress, p.ResidentialAddress)
	setStr(&d.NIN, p.NIN)
	setStr(&d.CertificateOfIncorporation, p.CertificateOfIncorporation)
	setStr(&d.StatusReport, p.StatusReport)
	setStr(&d.DirectorID, p.DirectorID)
	setStr(&d.UtilityBill, p.UtilityBill)
	setStr(&d.TaxClearance, p.TaxClearance)
	setStr(&d.DeclarationStatement, p.DeclarationStatement)
	setStr(&d.FinancialHistory, p.FinancialHistory)
	setStr(&d.DeliveryPolicy, p.DeliveryPolicy)
	setStr(&d.ReturnCreditPolicy, p.ReturnCreditPolicy)
	setStr(&d.ProhibitedActivitiesDeclaration, p.ProhibitedActivitiesDeclaration)
	setStr(&d.BricksAndMortarAgreement, p.BricksAndMortarAgreement)
	setStr(&d.WebMerchantsAgreement, p.WebMerchantsAgreement)
	setStr(&d.MemorandumAndArticles, p.MemorandumAndArticles)

	if p.StaffStrength != nil {
		d.StaffStrength = null.IntFrom(int(*p.StaffStrength))
	}
	if p.NumberOfLocations != nil {
		d.NumberOfLocations = null.IntFrom(int(*p.NumberOfLocations))
	}
	if p.Bankrupcy != nil {
		d.Bankrupcy = null.BoolFrom(*p.Bankrupcy)
	}
	if p.RelationshipWithAcquirer != nil {
		d.RelationshipWithAcquirer = null.BoolFrom(*p.RelationshipWithAcquirer)
	}
	if p.Politics != nil {
		d.Politics = null.BoolFrom(*p.Politics)
	}
	if p.PCIDSSCompliant != nil {
		d.PCIDSSCompliant = null.BoolFrom(*p.PCIDSSCompliant)
	}
	if p.Uses3DSecure != nil {
		d.Uses3DSecure = null.BoolFrom(*p.Uses3DSecure)
	}
	if p.DataProtectionPolicy != nil {
		d.DataProtectionPolicy = null.BoolFrom(*p.DataProtectionPolicy)
	}
	if p.PercentOfBusiness != nil {
		d.PercentOfBusiness = null.Float64From(*p.PercentOfBusiness)
	}
}
