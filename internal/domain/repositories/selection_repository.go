package repositories

import (
	"context"

	"merchant-kita.onboarding/internal/domain/entities"
)

// SelectionRepository persists the merchant selection across sessions
type SelectionRepository interface {
	// Get returns the current selection, auto-selecting the first merchant
	// when the list is non-empty and nothing is selected yet.
	Get(ctx context.Context) (*entities.MerchantSelection, error)

	// SetMerchants replaces the available list, keeping the current choice
	// when it is still present and falling back to the first entry.
	SetMerchants(ctx context.Context, merchants []entities.Merchant) (*entities.MerchantSelection, error)

	// Select picks a merchant by code.
	Select(ctx context.Context, merchantCode string) error

	// Clear wipes the selection (logout).
	Clear(ctx context.Context) error
}
