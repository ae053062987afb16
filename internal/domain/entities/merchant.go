package entities

// Merchant is one merchant available to the authenticated user
type Merchant struct {
	MerchantCode string `json:"merchantCode"`
	MerchantName string `json:"merchantName"`
}

// MerchantSelection holds the persisted merchant choice. If the merchant list
// is non-empty exactly one entry is selected at all times; the first entry is
// auto-selected on first access.
type MerchantSelection struct {
	SelectedMerchantCode string     `json:"selectedMerchantCode"`
	Merchants            []Merchant `json:"merchants"`
}

// Selected returns the currently selected merchant, or nil when the list is
// empty.
func (s *MerchantSelection) Selected() *Merchant {
	for i := range s.Merchants {
		if s.Merchants[i].MerchantCode == s.SelectedMerchantCode {
			return &s.Merchants[i]
		}
	}
	if len(s.Merchants) > 0 {
		return &s.Merchants[0]
	}
	return nil
}
