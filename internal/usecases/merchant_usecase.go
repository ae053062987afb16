package usecases

import (
	"context"

	"merchant-kita.onboarding/internal/domain/entities"
	"merchant-kita.onboarding/internal/domain/repositories"
)

// MerchantUsecase exposes the persisted merchant selection. The merchant
// list itself comes from the session claims; the selection survives across
// sessions.
type MerchantUsecase struct {
	selection repositories.SelectionRepository
}

// NewMerchantUsecase creates a new merchant usecase
func NewMerchantUsecase(selection repositories.SelectionRepository) *MerchantUsecase {
	return &MerchantUsecase{selection: selection}
}

// Selection returns the current selection after syncing the available list
// from the session. Auto-select-first applies when nothing is chosen yet.
func (u *MerchantUsecase) Selection(ctx context.Context, available []entities.Merchant) (*entities.MerchantSelection, error) {
	if len(available) > 0 {
		return u.selection.SetMerchants(ctx, available)
	}
	return u.selection.Get(ctx)
}

// Select picks a merchant by code.
func (u *MerchantUsecase) Select(ctx context.Context, merchantCode string) (*entities.MerchantSelection, error) {
	if err := u.selection.Select(ctx, merchantCode); err != nil {
		return nil, err
	}
	return u.selection.Get(ctx)
}

// Clear wipes the selection on logout.
func (u *MerchantUsecase) Clear(ctx context.Context) error {
	return u.selection.Clear(ctx)
}
