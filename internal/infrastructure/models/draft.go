package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplianceDraft is the durable snapshot of the in-progress submission.
// One row per merchant code; every mutation writes through synchronously so
// the draft survives restarts.
type ComplianceDraft struct {
	MerchantCode string `gorm:"primaryKey;type:varchar(64)"`
	Progress     int    `gorm:"not null;default:0"`
	StepIndex    int    `gorm:"not null;default:0"`

	LegalBusinessName               string `gorm:"type:varchar(255)"`
	TradingName                     string `gorm:"type:varchar(255)"`
	BusinessDescription             string `gorm:"type:text"`
	BusinessCategory                string `gorm:"type:varchar(100)"`
	ProjectedSalesVolume            string `gorm:"type:varchar(50)"`
	MerchantAddress                 string `gorm:"type:text"`
	RCNumber                        string `gorm:"type:varchar(50)"`
	CountryCode                     string `gorm:"type:varchar(10)"`
	IncorporationDate               string `gorm:"type:varchar(30)"`
	BusinessCommencementDate        string `gorm:"type:varchar(30)"`
	OwnershipType                   string `gorm:"type:varchar(50)"`
	StaffStrength                   *int
	NumberOfLocations               *int
	Bankrupcy                       *bool
	BankrupcyReason                 string `gorm:"type:text"`
	RelationshipWithAcquirer        *bool
	ReasonForTerminationRelationsip string `gorm:"type:text"`
	Politics                        *bool
	ProductPriceRange               string `gorm:"type:varchar(50)"`
	CardAcceptanceType              string `gorm:"type:varchar(50)"`
	Website                         string `gorm:"type:varchar(255)"`

	AccountName          string `gorm:"type:varchar(255)"`
	AccountNumber        string `gorm:"type:varchar(50)"`
	AccountType          string `gorm:"type:varchar(50)"`
	BVN                  string `gorm:"type:varchar(50)"`
	BankName             string `gorm:"type:varchar(255)"`
	SwiftCode            string `gorm:"type:varchar(50)"`
	TIN                  string `gorm:"type:varchar(50)"`
	PCIDSSCompliant      *bool `gorm:"column:pci_dss_compliant"`
	Uses3DSecure         *bool `gorm:"column:uses_3d_secure"`
	DataProtectionPolicy *bool

	ContactEmail string `gorm:"type:varchar(255)"`
	DisputeEmail string `gorm:"type:varchar(255)"`
	SupportEmail string `gorm:"type:varchar(255)"`

	DOB                string   `gorm:"type:varchar(30)"`
	Nationality        string   `gorm:"type:varchar(100)"`
	Role               string   `gorm:"type:varchar(100)"`
	PercentOfBusiness  *float64
	IdentificationType string   `gorm:"type:varchar(50)"`
	IdentityNumber     string   `gorm:"type:varchar(100)"`
	ResidentialAddress string   `gorm:"type:text"`
	NIN                string   `gorm:"type:varchar(50)"`

	// Base64 document payloads held locally until transfer
	CertificateOfIncorporation      string `gorm:"type:text"`
	StatusReport                    string `gorm:"type:text"`
	DirectorID                      string `gorm:"type:text"`
	UtilityBill                     string `gorm:"type:text"`
	TaxClearance                    string `gorm:"type:text"`
	DeclarationStatement            string `gorm:"type:text"`
	FinancialHistory                string `gorm:"type:text"`
	DeliveryPolicy                  string `gorm:"type:text"`
	ReturnCreditPolicy              string `gorm:"type:text"`
	ProhibitedActivitiesDeclaration string `gorm:"type:text"`
	BricksAndMortarAgreement        string `gorm:"type:text"`
	WebMerchantsAgreement           string `gorm:"type:text"`
	MemorandumAndArticles           string `gorm:"type:text"`

	Owners []DraftOwner `gorm:"foreignKey:MerchantCode;references:MerchantCode"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the table name
func (ComplianceDraft) TableName() string {
	return "compliance_drafts"
}

// DraftOwner is a representative entry of a draft. Position keeps the
// user-visible ordering; ID is the stable handle used by edit/remove.
type DraftOwner struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantCode       string    `gorm:"type:varchar(64);not null;index"`
	Position           int       `gorm:"not null"`
	FirstName          string    `gorm:"type:varchar(100)"`
	LastName           string    `gorm:"type:varchar(100)"`
	Mobile             string    `gorm:"type:varchar(30)"`
	VerificationType   string    `gorm:"type:varchar(50)"`
	VerificationNumber string    `gorm:"type:varchar(100)"`
	Occupation         string    `gorm:"type:varchar(100)"`
	PercentOfBusiness  float64
	Address            string `gorm:"type:text"`
	DOB                string `gorm:"type:varchar(30)"`
	Nationality        string `gorm:"type:varchar(100)"`
	Role               string `gorm:"type:varchar(100)"`
	BVN                string `gorm:"type:varchar(50)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the table name
func (DraftOwner) TableName() string {
	return "draft_owners"
}
