package entities

import (
	"github.com/volatiletech/null/v8"
)

// ComplianceStatus represents the review state of a remote compliance record
type ComplianceStatus string

const (
	ComplianceStatusNotStarted  ComplianceStatus = "not_started"
	ComplianceStatusPending     ComplianceStatus = "pending"
	ComplianceStatusUnderReview ComplianceStatus = "under_review"
	ComplianceStatusApproved    ComplianceStatus = "approved"
	ComplianceStatusRejected    ComplianceStatus = "rejected"
)

// ProgressSubmitted is the progress value of a fully verified/submitted record.
// Progress counts completed wizard steps (0..8).
const ProgressSubmitted = 8

// ComplianceDocument represents a document attached to the remote record
type ComplianceDocument struct {
	ID           string `json:"id"`
	DocumentType string `json:"documentType"`
	FilePath     string `json:"filePath"`
	Link         string `json:"link"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	Status       bool   `json:"status"`
}

// BusinessInfo holds the business identity section of the remote record
type BusinessInfo struct {
	DOB                             null.String `json:"dob"`
	Nationality                     null.String `json:"nationality"`
	Role                            null.String `json:"role"`
	PercentOfBusiness               null.Float64 `json:"percentOfBusiness"`
	IdentificationType              null.String `json:"identificationType"`
	TradingName                     null.String `json:"tradingName"`
	BusinessDescription             null.String `json:"businessDescription"`
	IdentityNumber                  null.String `json:"identityNumber"`
	ProjectedSalesVolume            null.String `json:"projectedSalesVolume"`
	MerchantAddress                 null.String `json:"merchantAddress"`
	RCNumber                        null.String `json:"rcNumber"`
	LegalBusinessName               null.String `json:"legalBusinessName"`
	CountryCode                     null.String `json:"countryCode"`
	IncorporationDate               null.String `json:"incorporationDate"`
	BusinessCommencementDate        null.String `json:"businessCommencementDate"`
	OwnershipType                   null.String `json:"ownershipType"`
	StaffStrength                   null.Int    `json:"staffStrength"`
	NumberOfLocations               null.Int    `json:"numberOfLocations"`
	Bankrupcy                       null.Bool   `json:"bankrupcy"`
	BankrupcyReason                 null.String `json:"bankrupcyReason"`
	RelationshipWithAcquirer        null.Bool   `json:"relationshipWithAcquirer"`
	ReasonForTerminationRelationsip null.String `json:"reasonForTerminationRelationsip"`
	Politics                        null.Bool   `json:"politics"`
	ProductPriceRange               null.String `json:"productPriceRange"`
	CardAcceptanceType              null.String `json:"cardAcceptanceType"`
	Website                         null.String `json:"website"`
	ContactEmail                    null.String `json:"contactEmail"`
	DisputeEmail                    null.String `json:"disputeEmail"`
	SupportEmail                    null.String `json:"supportEmail"`
}

// FinancialInfo holds the banking section of the remote record
type FinancialInfo struct {
	AccountName        null.String `json:"accountName"`
	AccountNumber      null.String `json:"accountNumber"`
	AccountType        null.String `json:"accountType"`
	BVN                null.String `json:"bvn"`
	BankName           null.String `json:"bankName"`
	SwiftCode          null.String `json:"swiftCode"`
	NIN                null.String `json:"nin"`
	TIN                null.String `json:"tin"`
	ResidentialAddress null.String `json:"residentialAddress"`
}

// OwnerInfo is a business representative as reported by the remote record
type OwnerInfo struct {
	ID                 string       `json:"id"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	Address            null.String  `json:"address"`
	Occupation         null.String  `json:"occupation"`
	Mobile             null.String  `json:"mobile"`
	DOB                null.String  `json:"dob"`
	Nationality        null.String  `json:"nationality"`
	PercentOfBusiness  null.Float64 `json:"percentOfBusiness"`
	Role               null.String  `json:"role"`
	VerificationType   null.String  `json:"verificationType"`
	VerificationNumber null.String  `json:"verificationNumber"`
	BVN                null.String  `json:"bvn"`
}

// ComplianceRecord is the server-authoritative compliance submission.
// ID == 0 means the record has not been created server-side yet; the first
// write must be a create, every later write an update.
type ComplianceRecord struct {
	ID                               int                  `json:"id"`
	MerchantCode                     string               `json:"merchantCode"`
	MerchantName                     string               `json:"merchantName"`
	Documents                        []ComplianceDocument `json:"documents"`
	BusinessInfo                     BusinessInfo         `json:"businessInfo"`
	FinancialInfo                    FinancialInfo        `json:"financialInfo"`
	Owners                           []OwnerInfo          `json:"owners"`
	PCIDSSCompliant                  bool                 `json:"pciDssCompliant"`
	Progress                         int                  `json:"progress"`
	Uses3DSecure                     bool                 `json:"uses3dSecure"`
	DataProtectionPolicy             bool                 `json:"dataProtectionPolicy"`
	ProhibitedActivitiesDeclaration  null.String          `json:"prohibitedActivitiesDeclaration"`
	Status                           ComplianceStatus     `json:"status"`
	ReviewedAt                       null.String          `json:"reviewedAt"`
	ReviewedBy                       null.String          `json:"reviewedBy"`
	ValidationReference              null.String          `json:"validationReference"`
	VerificationComment              null.String          `json:"verificationComment"`
}

// Exists reports whether the record has been created server-side
func (r *ComplianceRecord) Exists() bool {
	return r != nil && r.ID != 0
}

// FullyVerified reports whether the record has completed every wizard step
func (r *ComplianceRecord) FullyVerified() bool {
	return r != nil && r.Progress >= ProgressSubmitted
}

// NotStartedRecord returns the canonical record for a merchant that has not
// begun compliance. A remote "no record" response is an expected state, not
// an error, and is normalized into this shape.
func NotStartedRecord(merchantCode string) *ComplianceRecord {
	return &ComplianceRecord{
		ID:           0,
		MerchantCode: merchantCode,
		Documents:    []ComplianceDocument{},
		Owners:       []OwnerInfo{},
		Progress:     0,
		Status:       ComplianceStatusNotStarted,
	}
}
