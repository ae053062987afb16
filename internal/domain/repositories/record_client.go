package repositories

import (
	"context"

	"merchant-kita.onboarding/internal/domain/entities"
)

// RecordClient talks to the remote compliance service. The remote record is
// authoritative; this side only reads it and submits drafts toward it.
type RecordClient interface {
	// Fetch returns the record for a merchant. A remote "no record" response
	// is normalized to the not-started record, never an error. Successful
	// results are cached for the session; the cache is only replaced by a
	// successful Save.
	Fetch(ctx context.Context, merchantCode string) (*entities.ComplianceRecord, error)

	// Save creates the record when existing is absent (ID zero), otherwise
	// updates it. On success the returned record replaces the cache.
	Save(ctx context.Context, merchantCode string, payload *entities.RecordPayload, existing *entities.ComplianceRecord) (*entities.ComplianceRecord, error)

	// StartVerification requests the terminal review transition.
	StartVerification(ctx context.Context, merchantCode string) error

	// Cached returns the session-cached record, or nil.
	Cached(merchantCode string) *entities.ComplianceRecord

	// Invalidate drops the cached record.
	Invalidate(merchantCode string)
}
