package usecases

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"merchant-kita.onboarding/internal/domain/entities"
)

// PayloadMode selects which fields of a draft a submission carries.
type PayloadMode int

const (
	// PayloadFull emits every populated field.
	PayloadFull PayloadMode = iota
	// PayloadFiltered emits only the allow-listed keys. Progress, when
	// provided, is always retained so a filtered save can never regress it.
	PayloadFiltered
)

// PayloadOptions tunes BuildPayload for a specific wizard step.
type PayloadOptions struct {
	Mode        PayloadMode
	AllowedKeys []string
	// Progress, when set, is included as the explicit progress counter.
	Progress *int
	// OwnersOverride replaces the draft's owner list.
	OwnersOverride []entities.Owner
	// IncludeOwners controls whether the owner list is emitted at all.
	IncludeOwners bool
	// IncludeDocuments controls whether local documents become file uploads.
	IncludeDocuments bool
}

// documentWireFields maps local draft document fields to their wire names.
// The memorandum document is deliberately renamed on the wire.
var documentWireFields = map[string]string{
	"certificate_of_incorporation":      "certificate_of_incorporation",
	"status_report":                     "status_report",
	"director_id":                       "director_id",
	"utility_bill":                      "utility_bill",
	"tax_clearance":                     "tax_clearance",
	"declaration_statement":             "declaration_statement",
	"financial_history":                 "financial_history",
	"delivery_policy":                   "delivery_policy",
	"return_credit_policy":              "return_credit_policy",
	"prohibited_activities_declaration": "prohibited_activities_declaration",
	"bricks_and_mortar_agreement":       "bricks_and_mortar_agreement",
	"web_merchants_agreement":           "web_merchants_agreement",
	"memorandum_and_articles":           "memorandum_of_association",
}

// BuildPayload converts a draft into an outgoing submission. Empty and unset
// fields are never emitted: the remote service treats a present-but-empty
// field as an overwrite, so absence is the only safe way to say "unchanged".
func BuildPayload(draft *entities.ComplianceDraft, opts PayloadOptions) *entities.RecordPayload {
	fields := scalarFields(draft)

	if opts.Mode == PayloadFiltered {
		allowed := make(map[string]bool, len(opts.AllowedKeys))
		for _, k := range opts.AllowedKeys {
			allowed[k] = true
		}
		for k := range fields {
			if !allowed[k] {
				delete(fields, k)
			}
		}
	}

	if opts.Progress != nil {
		fields["progress"] = strconv.Itoa(*opts.Progress)
	}

	payload := &entities.RecordPayload{Fields: fields}

	if opts.IncludeOwners {
		owners := draft.Owners
		if opts.OwnersOverride != nil {
			owners = opts.OwnersOverride
		}
		for _, o := range owners {
			payload.Owners = append(payload.Owners, ownerPayload(o))
		}
	}

	if opts.IncludeDocuments {
		payload.Documents = documentUploads(draft)
	}

	return payload
}

func scalarFields(d *entities.ComplianceDraft) map[string]string {
	fields := make(map[string]string)

	put := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}

	put("legalBusinessName", d.LegalBusinessName)
	put("tradingName", d.TradingName)
	put("businessDescription", d.BusinessDescription)
	put("businessCategory", d.BusinessCategory)
	put("projectedSalesVolume", d.ProjectedSalesVolume)
	put("merchantAddress", d.MerchantAddress)
	put("rcNumber", d.RCNumber)
	put("countryCode", d.CountryCode)
	put("incorporationDate", d.IncorporationDate)
	put("businessCommencementDate", d.BusinessCommencementDate)
	put("ownershipType", d.OwnershipType)
	put("bankrupcyReason", d.BankrupcyReason)
	put("reasonForTerminationRelationsip", d.ReasonForTerminationRelationsip)
	put("productPriceRange", d.ProductPriceRange)
	put("cardAcceptanceType", d.CardAcceptanceType)
	put("website", d.Website)
	put("accountName", d.AccountName)
	put("accountNumber", d.AccountNumber)
	put("accountType", d.AccountType)
	put("bvn", d.BVN)
	put("bankName", d.BankName)
	put("swiftCode", d.SwiftCode)
	put("tin", d.TIN)
	put("contactEmail", d.ContactEmail)
	put("disputeEmail", d.DisputeEmail)
	put("supportEmail", d.SupportEmail)
	put("dob", d.DOB)
	put("nationality", d.Nationality)
	put("role", d.Role)
	put("identificationType", d.IdentificationType)
	put("identityNumber", d.IdentityNumber)
	put("residentialAddress", d.ResidentialAddress)
	put("nin", d.NIN)

	if d.StaffStrength.Valid {
		fields["staffStrength"] = strconv.Itoa(d.StaffStrength.Int)
	}
	if d.NumberOfLocations.Valid {
		fields["numberOfLocations"] = strconv.Itoa(d.NumberOfLocations.Int)
	}
	if d.Bankrupcy.Valid {
		fields["bankrupcy"] = strconv.FormatBool(d.Bankrupcy.Bool)
	}
	if d.RelationshipWithAcquirer.Valid {
		fields["relationshipWithAcquirer"] = strconv.FormatBool(d.RelationshipWithAcquirer.Bool)
	}
	if d.Politics.Valid {
		fields["politics"] = strconv.FormatBool(d.Politics.Bool)
	}
	if d.PCIDSSCompliant.Valid {
		fields["pciDssCompliant"] = strconv.FormatBool(d.PCIDSSCompliant.Bool)
	}
	if d.Uses3DSecure.Valid {
		fields["uses3dSecure"] = strconv.FormatBool(d.Uses3DSecure.Bool)
	}
	if d.DataProtectionPolicy.Valid {
		fields["dataProtectionPolicy"] = strconv.FormatBool(d.DataProtectionPolicy.Bool)
	}
	if d.PercentOfBusiness.Valid {
		fields["percentOfBusiness"] = strconv.FormatFloat(d.PercentOfBusiness.Float64, 'f', -1, 64)
	}

	return fields
}

func ownerPayload(o entities.Owner) entities.OwnerPayload {
	p := entities.OwnerPayload{}
	put := func(key, value string) {
		if value != "" {
			p[key] = value
		}
	}

	if o.ID != uuid.Nil {
		put("id", o.ID.String())
	}
	put("firstName", o.FirstName)
	put("lastName", o.LastName)
	put("mobile", o.Mobile)
	put("verificationType", o.VerificationType)
	put("verificationNumber", o.VerificationNumber)
	put("occupation", o.Occupation)
	put("address", o.Address)
	put("dob", o.DOB)
	put("nationality", o.Nationality)
	put("role", o.Role)
	put("bvn", o.BVN)
	if o.PercentOfBusiness != 0 {
		put("percentOfBusiness", strconv.FormatFloat(o.PercentOfBusiness, 'f', -1, 64))
	}
	return p
}

func documentUploads(d *entities.ComplianceDraft) []entities.DocumentUpload {
	local := map[string]string{
		"certificate_of_incorporation":      d.CertificateOfIncorporation,
		"status_report":                     d.StatusReport,
		"director_id":                       d.DirectorID,
		"utility_bill":                      d.UtilityBill,
		"tax_clearance":                     d.TaxClearance,
		"declaration_statement":             d.DeclarationStatement,
		"financial_history":                 d.FinancialHistory,
		"delivery_policy":                   d.DeliveryPolicy,
		"return_credit_policy":              d.ReturnCreditPolicy,
		"prohibited_activities_declaration": d.ProhibitedActivitiesDeclaration,
		"bricks_and_mortar_agreement":       d.BricksAndMortarAgreement,
		"web_merchants_agreement":           d.WebMerchantsAgreement,
		"memorandum_and_articles":           d.MemorandumAndArticles,
	}

	var uploads []entities.DocumentUpload
	// Stable iteration keeps multipart part order deterministic.
	for _, localField := range documentFieldOrder {
		encoded := local[localField]
		if encoded == "" {
			continue
		}
		data, mimeType, ok := decodeDocument(encoded)
		if !ok {
			continue
		}
		wireField := documentWireFields[localField]
		uploads = append(uploads, entities.DocumentUpload{
			Field:    wireField,
			Filename: wireField + extensionFor(mimeType),
			MimeType: mimeType,
			Data:     data,
		})
	}
	return uploads
}

var documentFieldOrder = []string{
	"certificate_of_incorporation",
	"status_report",
	"director_id",
	"utility_bill",
	"tax_clearance",
	"declaration_statement",
	"financial_history",
	"delivery_policy",
	"return_credit_policy",
	"prohibited_activities_declaration",
	"bricks_and_mortar_agreement",
	"web_merchants_agreement",
	"memorandum_and_articles",
}

// decodeDocument accepts either a bare base64 string or a data URL and
// returns the raw bytes plus the mime type.
func decodeDocument(encoded string) ([]byte, string, bool) {
	mimeType := ""
	if strings.HasPrefix(encoded, "data:") {
		rest := strings.TrimPrefix(encoded, "data:")
		idx := strings.Index(rest, ";base64,")
		if idx < 0 {
			return nil, "", false
		}
		mimeType = rest[:idx]
		encoded = rest[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", false
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, true
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ""
	}
}
