package repositories

import (
	"context"

	"gorm.io/gorm"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/infrastructure/models"
)

// selectionRepo implements repositories.SelectionRepository
type selectionRepo struct {
	db *gorm.DB
}

// NewSelectionRepository creates a new merchant selection repository
func NewSelectionRepository(db *gorm.DB) repositories.SelectionRepository {
	return &selectionRepo{db: db}
}

// Get returns the current selection. When merchants exist but none is marked
// selected, the first is selected and persisted before returning.
func (r *selectionRepo) Get(ctx context.Context) (*entities.MerchantSelection, error) {
	var ms []models.Merchant
	if err := r.db.WithContext(ctx).Order("position").Find(&ms).Error; err != nil {
		return nil, err
	}

	sel := &entities.MerchantSelection{Merchants: []entities.Merchant{}}
	for _, m := range ms {
		sel.Merchants = append(sel.Merchants, entities.Merchant{
			MerchantCode: m.MerchantCode,
			MerchantName: m.MerchantName,
		})
		if m.Selected {
			sel.SelectedMerchantCode = m.MerchantCode
		}
	}

	if sel.SelectedMerchantCode == "" && len(ms) > 0 {
		first := ms[0].MerchantCode
		if err := r.markSelected(ctx, first); err != nil {
			return nil, err
		}
		sel.SelectedMerchantCode = first
	}
	return sel, nil
}

// SetMerchants replaces the available list. The current choice survives when
// it is still present, otherwise the first entry takes over.
func (r *selectionRepo) SetMerchants(ctx context.Context, merchants []entities.Merchant) (*entities.MerchantSelection, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	keep := ""
	for _, m := range merchants {
		if m.MerchantCode == current.SelectedMerchantCode {
			keep = m.MerchantCode
			break
		}
	}
	if keep == "" && len(merchants) > 0 {
		keep = merchants[0].MerchantCode
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Merchant{}).Error; err != nil {
			return err
		}
		for i, m := range merchants {
			row := models.Merchant{
				MerchantCode: m.MerchantCode,
				MerchantName: m.MerchantName,
				Selected:     m.MerchantCode == keep,
				Position:     i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx)
}

// Select picks a merchant by code.
func (r *selectionRepo) Select(ctx context.Context, merchantCode string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("merchant_code = ?", merchantCode).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return r.markSelected(ctx, merchantCode)
}

// Clear wipes the list and selection.
func (r *selectionRepo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Merchant{}).Error
}

func (r *selectionRepo) markSelected(ctx context.Context, merchantCode string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Merchant{}).Where("selected = ?", true).
			Update("selected", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Merchant{}).Where("merchant_code = ?", merchantCode).
			Update("selected", true).Error
	})
}
