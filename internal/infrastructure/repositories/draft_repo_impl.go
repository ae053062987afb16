package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/infrastructure/models"
	"merchant-kita.onboarding/pkg/utils"
)

// draftRepo implements repositories.DraftRepository on sqlite
type draftRepo struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) repositories.DraftRepository {
	return &draftRepo{db: db}
}

// Get returns the draft for a merchant, creating the empty default row on
// first use.
func (r *draftRepo) Get(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error) {
	if merchantCode == "" {
		return nil, domainerrors.ErrMerchantCodeRequired
	}

	m, err := r.load(ctx, merchantCode)
	if err == nil {
		return r.toEntity(m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m = &models.ComplianceDraft{MerchantCode: merchantCode}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(m), nil
}

// Update merges the patch into the stored draft and writes it back.
func (r *draftRepo) Update(ctx context.Context, merchantCode string, patch *entities.DraftPatch) (*entities.ComplianceDraft, error) {
	draft, err := r.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}

	patch.Apply(draft)

	m := r.toModel(draft)
	if err := r.db.WithContext(ctx).Omit("Owners").Save(m).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// SetStepIndex records the UI position only; progress is untouched.
func (r *draftRepo) SetStepIndex(ctx context.Context, merchantCode string, index int) error {
	if index < 0 || index >= entities.TotalWizardSteps {
		return domainerrors.ErrInvalidInput
	}

	result := r.db.WithContext(ctx).Model(&models.ComplianceDraft{}).
		Where("merchant_code = ?", merchantCode).
		Update("step_index", index)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkStepComplete advances progress to stepIndex+1 when the step is at or
// beyond current progress and progress is below totalSteps. Revisiting an
// already completed step never moves progress.
func (r *draftRepo) MarkStepComplete(ctx context.Context, merchantCode string, stepIndex, totalSteps int) (*entities.ComplianceDraft, error) {
	draft, err := r.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}

	if stepIndex >= draft.Progress && draft.Progress < totalSteps {
		draft.Progress = stepIndex + 1
		result := r.db.WithContext(ctx).Model(&models.ComplianceDraft{}).
			Where("merchant_code = ?", merchantCode).
			Update("progress", draft.Progress)
		if result.Error != nil {
			return nil, result.Error
		}
	}
	return draft, nil
}

// MarkSubmitted sets progress to the fully-submitted value.
func (r *draftRepo) MarkSubmitted(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error) {
	draft, err := r.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}

	draft.Progress = entities.ProgressSubmitted
	result := r.db.WithContext(ctx).Model(&models.ComplianceDraft{}).
		Where("merchant_code = ?", merchantCode).
		Update("progress", draft.Progress)
	if result.Error != nil {
		return nil, result.Error
	}
	return draft, nil
}

// Reset replaces the whole draft with the empty default.
func (r *draftRepo) Reset(ctx context.Context, merchantCode string) error {
	if merchantCode == "" {
		return domainerrors.ErrMerchantCodeRequired
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("merchant_code = ?", merchantCode).Delete(&models.DraftOwner{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_code = ?", merchantCode).Delete(&models.ComplianceDraft{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.ComplianceDraft{MerchantCode: merchantCode}).Error
	})
}

// AppendOwner adds an owner at the end of the list, assigning a stable ID
// when the caller left it unset.
func (r *draftRepo) AppendOwner(ctx context.Context, merchantCode string, owner entities.Owner) (*entities.Owner, error) {
	if _, err := r.Get(ctx, merchantCode); err != nil {
		return nil, err
	}

	if owner.ID == uuid.Nil {
		owner.ID = utils.GenerateUUIDv7()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DraftOwner{}).Where("merchant_code = ?", merchantCode).Count(&count).Error; err != nil {
			return err
		}
		m := r.ownerToModel(merchantCode, int(count), &owner)
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// UpdateOwner replaces the fields of an existing owner by ID.
func (r *draftRepo) UpdateOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID, owner entities.Owner) error {
	updates := map[string]interface{}{
		"first_name":          owner.FirstName,
		"last_name":           owner.LastName,
		"mobile":              owner.Mobile,
		"verification_type":   owner.VerificationType,
		"verification_number": owner.VerificationNumber,
		"occupation":          owner.Occupation,
		"percent_of_business": owner.PercentOfBusiness,
		"address":             owner.Address,
		"dob":                 owner.DOB,
		"nationality":         owner.Nationality,
		"role":                owner.Role,
		"bvn":                 owner.BVN,
	}

	result := r.db.WithContext(ctx).Model(&models.DraftOwner{}).
		Where("id = ? AND merchant_code = ?", ownerID, merchantCode).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// RemoveOwner deletes an owner by ID. Remaining entries keep their relative
// order.
func (r *draftRepo) RemoveOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND merchant_code = ?", ownerID, merchantCode).
		Delete(&models.DraftOwner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *draftRepo) load(ctx context.Context, merchantCode string) (*models.ComplianceDraft, error) {
	var m models.ComplianceDraft
	err := r.db.WithContext(ctx).
		Preload("Owners", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&m, "merchant_code = ?", merchantCode).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// toEntity converts GORM model to Domain Entity
func (r *draftRepo) toEntity(m *models.ComplianceDraft) *entities.ComplianceDraft {
	owners := []entities.Owner{}
	for i := range m.Owners {
		owners = append(owners, *r.ownerToEntity(&m.Owners[i]))
	}

	return &entities.ComplianceDraft{
		MerchantCode: m.MerchantCode,
		Progress:     m.Progress,
		StepIndex:    m.StepIndex,

		LegalBusinessName:               m.LegalBusinessName,
		TradingName:                     m.TradingName,
		BusinessDescription:             m.BusinessDescription,
		BusinessCategory:                m.BusinessCategory,
		ProjectedSalesVolume:            m.ProjectedSalesVolume,
		MerchantAddress:                 m.MerchantAddress,
		RCNumber:                        m.RCNumber,
		CountryCode:                     m.CountryCode,
		IncorporationDate:               m.IncorporationDate,
		BusinessCommencementDate:        m.BusinessCommencementDate,
		OwnershipType:                   m.OwnershipType,
		StaffStrength:                   null.IntFromPtr(m.StaffStrength),
		NumberOfLocations:               null.IntFromPtr(m.NumberOfLocations),
		Bankrupcy:                       null.BoolFromPtr(m.Bankrupcy),
		BankrupcyReason:                 m.BankrupcyReason,
		RelationshipWithAcquirer:        null.BoolFromPtr(m.RelationshipWithAcquirer),
		ReasonForTerminationRelationsip: m.ReasonForTerminationRelationsip,
		Politics:                        null.BoolFromPtr(m.Politics),
		ProductPriceRange:               m.ProductPriceRange,
		CardAcceptanceType:              m.CardAcceptanceType,
		Website:                         m.Website,

		AccountName:          m.AccountName,
		AccountNumber:        m.AccountNumber,
		AccountType:          m.AccountType,
		BVN:                  m.BVN,
		BankName:             m.BankName,
		SwiftCode:            m.SwiftCode,
		TIN:                  m.TIN,
		PCIDSSCompliant:      null.BoolFromPtr(m.PCIDSSCompliant),
		Uses3DSecure:         null.BoolFromPtr(m.Uses3DSecure),
		DataProtectionPolicy: null.BoolFromPtr(m.DataProtectionPolicy),

		ContactEmail: m.ContactEmail,
		DisputeEmail: m.DisputeEmail,
		SupportEmail: m.SupportEmail,

		DOB:                m.DOB,
		Nationality:        m.Nationality,
		Role:               m.Role,
		PercentOfBusiness:  null.Float64FromPtr(m.PercentOfBusiness),
		IdentificationType: m.IdentificationType,
		IdentityNumber:     m.IdentityNumber,
		ResidentialAddress: m.ResidentialAddress,
		NIN:                m.NIN,

		CertificateOfIncorporation:      m.CertificateOfIncorporation,
		StatusReport:                    m.StatusReport,
		DirectorID:                      m.DirectorID,
		UtilityBill:                     m.UtilityBill,
		TaxClearance:                    m.TaxClearance,
		DeclarationStatement:            m.DeclarationStatement,
		FinancialHistory:                m.FinancialHistory,
		DeliveryPolicy:                  m.DeliveryPolicy,
		ReturnCreditPolicy:              m.ReturnCreditPolicy,
		ProhibitedActivitiesDeclaration: m.ProhibitedActivitiesDeclaration,
		BricksAndMortarAgreement:        m.BricksAndMortarAgreement,
		WebMerchantsAgreement:           m.WebMerchantsAgreement,
		MemorandumAndArticles:           m.MemorandumAndArticles,

		Owners: owners,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toModel converts Domain Entity to GORM model
func (r *draftRepo) toModel(e *entities.ComplianceDraft) *models.ComplianceDraft {
	return &models.ComplianceDraft{
		MerchantCode: e.MerchantCode,
		Progress:     e.Progress,
		StepIndex:    e.StepIndex,

		LegalBusinessName:               e.LegalBusinessName,
		TradingName:                     e.TradingName,
		BusinessDescription:             e.BusinessDescription,
		BusinessCategory:                e.BusinessCategory,
		ProjectedSalesVolume:            e.ProjectedSalesVolume,
		MerchantAddress:                 e.MerchantAddress,
		RCNumber:                        e.RCNumber,
		CountryCode:                     e.CountryCode,
		IncorporationDate:               e.IncorporationDate,
		BusinessCommencementDate:        e.BusinessCommencementDate,
		OwnershipType:                   e.OwnershipType,
		StaffStrength:                   e.StaffStrength.Ptr(),
		NumberOfLocations:               e.NumberOfLocations.Ptr(),
		Bankrupcy:                       e.Bankrupcy.Ptr(),
		BankrupcyReason:                 e.BankrupcyReason,
		RelationshipWithAcquirer:        e.RelationshipWithAcquirer.Ptr(),
		ReasonForTerminationRelationsip: e.ReasonForTerminationRelationsip,
		Politics:                        e.Politics.Ptr(),
		ProductPriceRange:               e.ProductPriceRange,
		CardAcceptanceType:              e.CardAcceptanceType,
		Website:                         e.Website,

		AccountName:          e.AccountName,
		AccountNumber:        e.AccountNumber,
		AccountType:          e.AccountType,
		BVN:                  e.BVN,
		BankName:             e.BankName,
		SwiftCode:            e.SwiftCode,
		TIN:                  e.TIN,
		PCIDSSCompliant:      e.PCIDSSCompliant.Ptr(),
		Uses3DSecure:         e.Uses3DSecure.Ptr(),
		DataProtectionPolicy: e.DataProtectionPolicy.Ptr(),

		ContactEmail: e.ContactEmail,
		DisputeEmail: e.DisputeEmail,
		SupportEmail: e.SupportEmail,

		DOB:                e.DOB,
		Nationality:        e.Nationality,
		Role:               e.Role,
		PercentOfBusiness:  e.PercentOfBusiness.Ptr(),
		IdentificationType: e.IdentificationType,
		IdentityNumber:     e.IdentityNumber,
		ResidentialAddress: e.ResidentialAddress,
		NIN:                e.NIN,

		CertificateOfIncorporation:      e.CertificateOfIncorporation,
		StatusReport:                    e.StatusReport,
		DirectorID:                      e.DirectorID,
		UtilityBill:                     e.UtilityBill,
		TaxClearance:                    e.TaxClearance,
		DeclarationStatement:            e.DeclarationStatement,
		FinancialHistory:                e.FinancialHistory,
		DeliveryPolicy:                  e.DeliveryPolicy,
		ReturnCreditPolicy:              e.ReturnCreditPolicy,
		ProhibitedActivitiesDeclaration: e.ProhibitedActivitiesDeclaration,
		BricksAndMortarAgreement:        e.BricksAndMortarAgreement,
		WebMerchantsAgreement:           e.WebMerchantsAgreement,
		MemorandumAndArticles:           e.MemorandumAndArticles,

		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *draftRepo) ownerToEntity(m *models.DraftOwner) *entities.Owner {
	return &entities.Owner{
		ID:                 m.ID,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Mobile:             m.Mobile,
		VerificationType:   m.VerificationType,
		VerificationNumber: m.VerificationNumber,
		Occupation:         m.Occupation,
		PercentOfBusiness:  m.PercentOfBusiness,
		Address:            m.Address,
		DOB:                m.DOB,
		Nationality:        m.Nationality,
		Role:               m.Role,
		BVN:                m.BVN,
	}
}

func (r *draftRepo) ownerToModel(merchantCode string, position int, e *entities.Owner) *models.DraftOwner {
	return &models.DraftOwner{
		ID:                 e.ID,
		MerchantCode:       merchantCode,
		Position:           position,
		FirstName:          e.FirstName,
		LastName:           e.LastName,
		Mobile:             e.Mobile,
		VerificationType:   e.VerificationType,
		VerificationNumber: e.VerificationNumber,
		Occupation:         e.Occupation,
		PercentOfBusiness:  e.PercentOfBusiness,
		Address:            e.Address,
		DOB:                e.DOB,
		Nationality:        e.Nationality,
		Role:               e.Role,
		BVN:                e.BVN,
	}
}
