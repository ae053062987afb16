package repositories

import (
	"context"

	"github.com/google/uuid"
	"merchant-kita.onboarding/internal/domain/entities"
)

// DraftRepository owns the locally persisted compliance draft. Every
// mutation is written through to durable storage before returning.
type DraftRepository interface {
	// Get returns the draft for a merchant, creating the empty default on
	// first use.
	Get(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error)

	// Update merges a partial field set into the draft, last-write-wins per
	// field, non-destructive to fields the patch does not name.
	Update(ctx context.Context, merchantCode string, patch *entities.DraftPatch) (*entities.ComplianceDraft, error)

	// SetStepIndex records the UI position only; it never touches progress.
	SetStepIndex(ctx context.Context, merchantCode string, index int) error

	// MarkStepComplete advances progress to stepIndex+1 when stepIndex is at
	// or beyond current progress and progress is below totalSteps. Progress
	// is monotonic: out-of-order or repeated calls never decrement or
	// double-count.
	MarkStepComplete(ctx context.Context, merchantCode string, stepIndex, totalSteps int) (*entities.ComplianceDraft, error)

	// MarkSubmitted sets progress to the fully-submitted value.
	MarkSubmitted(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error)

	// Reset replaces the whole draft with the empty default. Used only on
	// restart-after-rejection.
	Reset(ctx context.Context, merchantCode string) error

	// Owner list operations address entries by stable ID.
	AppendOwner(ctx context.Context, merchantCode string, owner entities.Owner) (*entities.Owner, error)
	UpdateOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID, owner entities.Owner) error
	RemoveOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID) error
}
