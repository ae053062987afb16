package usecases

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/infrastructure/metrics"
	"merchant-kita.onboarding/pkg/logger"
)

// ProgressPublisher mirrors confirmed progress changes to interested
// listeners (legacy redis key, environment gate).
type ProgressPublisher interface {
	Publish(ctx context.Context, merchantCode string, progress int)
}

// WizardState is the full wizard view for a merchant.
type WizardState struct {
	Step           entities.WizardStep       `json:"step"`
	StepIndex      int                       `json:"stepIndex"`
	Progress       int                       `json:"progress"`
	RemoteProgress int                       `json:"remoteProgress"`
	Status         entities.ComplianceStatus `json:"status"`
	Draft          *entities.ComplianceDraft `json:"draft"`
	EditingOwnerID *uuid.UUID                `json:"editingOwnerId,omitempty"`
	Record         *entities.ComplianceRecord `json:"-"`
}

// NextInput carries step-specific data for an advance. Only the
// representative capture step reads it.
type NextInput struct {
	Owner *entities.Owner `json:"owner,omitempty"`
}

// WizardUsecase drives the onboarding wizard step machine.
type WizardUsecase struct {
	draftRepo repositories.DraftRepository
	client    repositories.RecordClient
	publisher ProgressPublisher
	metrics   *metrics.Metrics

	mu       sync.Mutex
	editing  map[string]uuid.UUID
	baseline map[string]map[string]string
}

// NewWizardUsecase creates a new wizard usecase
func NewWizardUsecase(draftRepo repositories.DraftRepository, client repositories.RecordClient, publisher ProgressPublisher, m *metrics.Metrics) *WizardUsecase {
	return &WizardUsecase{
		draftRepo: draftRepo,
		client:    client,
		publisher: publisher,
		metrics:   m,
		editing:   make(map[string]uuid.UUID),
		baseline:  make(map[string]map[string]string),
	}
}

var businessInfoKeys = []string{
	"legalBusinessName", "tradingName", "businessDescription",
	"businessCategory", "projectedSalesVolume", "merchantAddress", "website",
}

var registrationKeys = []string{
	"rcNumber", "countryCode", "incorporationDate", "businessCommencementDate",
	"ownershipType", "staffStrength", "numberOfLocations", "bankrupcy",
	"bankrupcyReason", "relationshipWithAcquirer",
	"reasonForTerminationRelationsip", "politics", "productPriceRange",
	"cardAcceptanceType", "tin", "accountName", "accountNumber", "accountType",
	"bvn", "bankName", "swiftCode", "pciDssCompliant", "uses3dSecure",
	"dataProtectionPolicy",
}

var emailKeys = []string{"contactEmail", "disputeEmail", "supportEmail"}

// Load resolves the wizard state for a merchant. The remote record is
// authoritative: while it is below the submitted threshold the step index is
// forced to its progress, and step-0 business fields the draft has not filled
// yet are reconciled from the record.
func (u *WizardUsecase) Load(ctx context.Context, merchantCode string) (*WizardState, error) {
	record, err := u.client.Fetch(ctx, merchantCode)
	if err != nil {
		return nil, err
	}

	draft, err := u.draftRepo.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}

	if record.Progress < entities.ProgressSubmitted && draft.StepIndex != record.Progress {
		if err := u.draftRepo.SetStepIndex(ctx, merchantCode, record.Progress); err != nil {
			return nil, err
		}
		draft.StepIndex = record.Progress
	}

	if patch := reconcilePatch(draft, record); patch != nil {
		draft, err = u.draftRepo.Update(ctx, merchantCode, patch)
		if err != nil {
			return nil, err
		}
	}

	u.rebaseline(merchantCode, draft)
	return u.state(merchantCode, draft, record), nil
}

// Next runs the current step's save protocol and advances on success.
func (u *WizardUsecase) Next(ctx context.Context, merchantCode string, input *NextInput) (*WizardState, error) {
	draft, err := u.draftRepo.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}
	record := u.client.Cached(merchantCode)
	if record == nil {
		record, err = u.client.Fetch(ctx, merchantCode)
		if err != nil {
			return nil, err
		}
	}

	step := entities.WizardStep(draft.StepIndex)
	switch step {
	case entities.StepBusinessInfo:
		if err := u.nextBusinessInfo(ctx, merchantCode, draft, record); err != nil {
			return nil, err
		}
	case entities.StepRegistrationInfo:
		if err := u.saveFiltered(ctx, merchantCode, draft, record, registrationKeys, int(step)+1); err != nil {
			return nil, err
		}
	case entities.StepDocuments:
		if err := u.nextDocuments(ctx, merchantCode, draft, record); err != nil {
			return nil, err
		}
	case entities.StepRepresentativeCapture:
		if err := u.nextRepresentative(ctx, merchantCode, input); err != nil {
			return nil, err
		}
	case entities.StepRepresentativeSummary:
		if err := u.nextRepresentativeSummary(ctx, merchantCode, draft, record); err != nil {
			return nil, err
		}
	case entities.StepEmailContacts:
		if err := u.nextEmailContacts(ctx, merchantCode, draft, record); err != nil {
			return nil, err
		}
	case entities.StepReview:
		if err := u.nextReview(ctx, merchantCode, draft, record); err != nil {
			return nil, err
		}
	case entities.StepSubmitted:
		return u.state(merchantCode, draft, record), nil
	default:
		return nil, domainerrors.BadRequest("unknown wizard step")
	}

	return u.advance(ctx, merchantCode, int(step))
}

// Back retreats one step, never below the first.
func (u *WizardUsecase) Back(ctx context.Context, merchantCode string) (*WizardState, error) {
	draft, err := u.draftRepo.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}
	if draft.StepIndex > 0 {
		if err := u.draftRepo.SetStepIndex(ctx, merchantCode, draft.StepIndex-1); err != nil {
			return nil, err
		}
		draft.StepIndex--
	}
	return u.state(merchantCode, draft, u.client.Cached(merchantCode)), nil
}

// EditOwner jumps back to the capture step with the owner loaded for an
// in-place overwrite.
func (u *WizardUsecase) EditOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID) (*WizardState, error) {
	draft, err := u.draftRepo.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}
	if draft.FindOwner(ownerID) == nil {
		return nil, domainerrors.NotFound("owner not found")
	}

	if err := u.draftRepo.SetStepIndex(ctx, merchantCode, int(entities.StepRepresentativeCapture)); err != nil {
		return nil, err
	}
	draft.StepIndex = int(entities.StepRepresentativeCapture)

	u.mu.Lock()
	u.editing[merchantCode] = ownerID
	u.mu.Unlock()

	return u.state(merchantCode, draft, u.client.Cached(merchantCode)), nil
}

// RemoveOwner deletes a representative from the draft.
func (u *WizardUsecase) RemoveOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID) (*WizardState, error) {
	if err := u.draftRepo.RemoveOwner(ctx, merchantCode, ownerID); err != nil {
		return nil, err
	}

	u.mu.Lock()
	if u.editing[merchantCode] == ownerID {
		delete(u.editing, merchantCode)
	}
	u.mu.Unlock()

	draft, err := u.draftRepo.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}
	return u.state(merchantCode, draft, u.client.Cached(merchantCode)), nil
}

// UpdateDraft merges an autosave patch into the draft. Progress and step are
// never touched here.
func (u *WizardUsecase) UpdateDraft(ctx context.Context, merchantCode string, patch *entities.DraftPatch) (*WizardState, error) {
	draft, err := u.draftRepo.Update(ctx, merchantCode, patch)
	if err != nil {
		return nil, err
	}
	return u.state(merchantCode, draft, u.client.Cached(merchantCode)), nil
}

// Submit is the terminal action from the review step. The verification
// request is primary; when it fails one minimal progress-only save is
// attempted so the submission is at least durably recorded. Both failing
// leaves the draft untouched on the review step.
func (u *WizardUsecase) Submit(ctx context.Context, merchantCode string) (*WizardState, error) {
	draft, err := u.draftRepo.Get(ctx, merchantCode)
	if err != nil {
		return nil, err
	}
	record := u.client.Cached(merchantCode)

	target := entities.ProgressSubmitted

	verr := u.client.StartVerification(ctx, merchantCode)
	if verr == nil {
		payload := BuildPayload(draft, PayloadOptions{Mode: PayloadFiltered, Progress: &target})
		if record, err = u.client.Save(ctx, merchantCode, payload, record); err != nil {
			logger.Warn(ctx, "post-verification progress save failed",
				zap.String("merchant_code", merchantCode),
				zap.Error(err),
			)
		}
		u.metrics.IncrementSubmission("ok")
		return u.finishSubmit(ctx, merchantCode, record)
	}

	logger.Error(ctx, "verification request failed",
		zap.String("merchant_code", merchantCode),
		zap.Error(verr),
	)

	progressOnly := &entities.RecordPayload{
		Fields: map[string]string{"progress": strconv.Itoa(target)},
	}
	record, err = u.client.Save(ctx, merchantCode, progressOnly, record)
	if err != nil {
		logger.Error(ctx, "fallback progress save failed",
			zap.String("merchant_code", merchantCode),
			zap.Error(err),
		)
		u.metrics.IncrementSubmission("error")
		return nil, domainerrors.ErrSubmissionFailed
	}

	u.metrics.IncrementSubmission("fallback")
	return u.finishSubmit(ctx, merchantCode, record)
}

func (u *WizardUsecase) finishSubmit(ctx context.Context, merchantCode string, record *entities.ComplianceRecord) (*WizardState, error) {
	draft, err := u.draftRepo.MarkSubmitted(ctx, merchantCode)
	if err != nil {
		return nil, err
	}
	if err := u.draftRepo.SetStepIndex(ctx, merchantCode, int(entities.StepSubmitted)); err != nil {
		return nil, err
	}
	draft.StepIndex = int(entities.StepSubmitted)

	u.publisher.Publish(ctx, merchantCode, draft.Progress)
	return u.state(merchantCode, draft, record), nil
}

func (u *WizardUsecase) nextBusinessInfo(ctx context.Context, merchantCode string, draft *entities.ComplianceDraft, record *entities.ComplianceRecord) error {
	if err := validateBusinessInfo(draft); err != nil {
		return err
	}

	target := int(entities.StepBusinessInfo) + 1
	opts := PayloadOptions{Mode: PayloadFiltered, AllowedKeys: businessInfoKeys}
	if record == nil || record.Progress < target {
		opts.Progress = &target
	}
	payload := BuildPayload(draft, opts)

	// Skip the network round trip when nothing changed since the last
	// confirmed save.
	if record.Exists() && u.isClean(merchantCode, payload.Fields) {
		return nil
	}

	if _, err := u.client.Save(ctx, merchantCode, payload, record); err != nil {
		return err
	}
	u.rebaselineFields(merchantCode, payload.Fields)
	return nil
}

func (u *WizardUsecase) nextDocuments(ctx context.Context, merchantCode string, draft *entities.ComplianceDraft, record *entities.ComplianceRecord) error {
	target := int(entities.StepDocuments) + 1
	opts := PayloadOptions{Mode: PayloadFiltered, AllowedKeys: nil, IncludeDocuments: true}
	if record == nil || record.Progress < target {
		opts.Progress = &target
	}
	payload := BuildPayload(draft, opts)

	_, err := u.client.Save(ctx, merchantCode, payload, record)
	return err
}

func (u *WizardUsecase) nextRepresentative(ctx context.Context, merchantCode string, input *NextInput) error {
	if input == nil || input.Owner == nil {
		return domainerrors.NewValidationError(map[string]string{
			"owner": "representative details are required",
		})
	}
	if err := validateOwner(input.Owner); err != nil {
		return err
	}

	u.mu.Lock()
	editingID, isEditing := u.editing[merchantCode]
	delete(u.editing, merchantCode)
	u.mu.Unlock()

	if isEditing {
		owner := *input.Owner
		owner.ID = editingID
		return u.draftRepo.UpdateOwner(ctx, merchantCode, editingID, owner)
	}

	_, err := u.draftRepo.AppendOwner(ctx, merchantCode, *input.Owner)
	return err
}

func (u *WizardUsecase) nextRepresentativeSummary(ctx context.Context, merchantCode string, draft *entities.ComplianceDraft, record *entities.ComplianceRecord) error {
	target := int(entities.StepRepresentativeSummary) + 1
	opts := PayloadOptions{Mode: PayloadFiltered, AllowedKeys: nil, IncludeOwners: true}
	if record == nil || record.Progress < target {
		opts.Progress = &target
	}
	payload := BuildPayload(draft, opts)

	_, err := u.client.Save(ctx, merchantCode, payload, record)
	return err
}

func (u *WizardUsecase) nextEmailContacts(ctx context.Context, merchantCode string, draft *entities.ComplianceDraft, record *entities.ComplianceRecord) error {
	if err := validateContactEmails(draft); err != nil {
		return err
	}

	// The contacts save always carries the progress counter explicitly.
	target := int(entities.StepEmailContacts) + 1
	payload := BuildPayload(draft, PayloadOptions{
		Mode:        PayloadFiltered,
		AllowedKeys: emailKeys,
		Progress:    &target,
	})

	_, err := u.client.Save(ctx, merchantCode, payload, record)
	return err
}

func (u *WizardUsecase) nextReview(ctx context.Context, merchantCode string, draft *entities.ComplianceDraft, record *entities.ComplianceRecord) error {
	target := int(entities.StepReview) + 1
	payload := BuildPayload(draft, PayloadOptions{Mode: PayloadFiltered, Progress: &target})

	_, err := u.client.Save(ctx, merchantCode, payload, record)
	return err
}

func (u *WizardUsecase) saveFiltered(ctx context.Context, merchantCode string, draft *entities.ComplianceDraft, record *entities.ComplianceRecord, keys []string, target int) error {
	opts := PayloadOptions{Mode: PayloadFiltered, AllowedKeys: keys}
	if record == nil || record.Progress < target {
		opts.Progress = &target
	}
	payload := BuildPayload(draft, opts)

	_, err := u.client.Save(ctx, merchantCode, payload, record)
	return err
}

// advance marks the step complete, moves the UI forward and mirrors the
// confirmed progress.
func (u *WizardUsecase) advance(ctx context.Context, merchantCode string, stepIndex int) (*WizardState, error) {
	draft, err := u.draftRepo.MarkStepComplete(ctx, merchantCode, stepIndex, entities.TotalWizardSteps)
	if err != nil {
		return nil, err
	}

	next := stepIndex + 1
	if next > int(entities.StepSubmitted) {
		next = int(entities.StepSubmitted)
	}
	if err := u.draftRepo.SetStepIndex(ctx, merchantCode, next); err != nil {
		return nil, err
	}
	draft.StepIndex = next

	u.publisher.Publish(ctx, merchantCode, draft.Progress)
	u.metrics.IncrementStepSave(entities.WizardStep(stepIndex).String())

	return u.state(merchantCode, draft, u.client.Cached(merchantCode)), nil
}

func (u *WizardUsecase) state(merchantCode string, draft *entities.ComplianceDraft, record *entities.ComplianceRecord) *WizardState {
	s := &WizardState{
		Step:      entities.WizardStep(draft.StepIndex),
		StepIndex: draft.StepIndex,
		Progress:  draft.Progress,
		Draft:     draft,
		Status:    entities.ComplianceStatusNotStarted,
		Record:    record,
	}
	if record != nil {
		s.RemoteProgress = record.Progress
		s.Status = record.Status
	}

	u.mu.Lock()
	if id, ok := u.editing[merchantCode]; ok {
		editing := id
		s.EditingOwnerID = &editing
	}
	u.mu.Unlock()
	return s
}

func (u *WizardUsecase) rebaseline(merchantCode string, draft *entities.ComplianceDraft) {
	payload := BuildPayload(draft, PayloadOptions{Mode: PayloadFiltered, AllowedKeys: businessInfoKeys})
	u.rebaselineFields(merchantCode, payload.Fields)
}

func (u *WizardUsecase) rebaselineFields(merchantCode string, fields map[string]string) {
	clean := make(map[string]string, len(fields))
	for k, v := range fields {
		if k == "progress" {
			continue
		}
		clean[k] = v
	}
	u.mu.Lock()
	u.baseline[merchantCode] = clean
	u.mu.Unlock()
}

func (u *WizardUsecase) isClean(merchantCode string, fields map[string]string) bool {
	u.mu.Lock()
	base, ok := u.baseline[merchantCode]
	u.mu.Unlock()
	if !ok {
		return false
	}
	for k, v := range fields {
		if k == "progress" {
			continue
		}
		if base[k] != v {
			return false
		}
	}
	for k := range base {
		if _, present := fields[k]; !present && base[k] != "" {
			return false
		}
	}
	return true
}

// reconcilePatch fills business fields the draft has not captured yet from
// the authoritative record. Locally entered values are never overwritten.
func reconcilePatch(draft *entities.ComplianceDraft, record *entities.ComplianceRecord) *entities.DraftPatch {
	if !record.Exists() {
		return nil
	}

	var p entities.DraftPatch
	changed := false
	fill := func(dst **string, local string, remote null.String) {
		if local == "" && remote.Valid && remote.String != "" {
			v := remote.String
			*dst = &v
			changed = true
		}
	}

	info := record.BusinessInfo
	fill(&p.LegalBusinessName, draft.LegalBusinessName, info.LegalBusinessName)
	fill(&p.TradingName, draft.TradingName, info.TradingName)
	fill(&p.BusinessDescription, draft.BusinessDescription, info.BusinessDescription)
	fill(&p.ProjectedSalesVolume, draft.ProjectedSalesVolume, info.ProjectedSalesVolume)
	fill(&p.MerchantAddress, draft.MerchantAddress, info.MerchantAddress)
	fill(&p.Website, draft.Website, info.Website)

	if !changed {
		return nil
	}
	return &p
}

// ResetDraft wipes the local draft. Only the restart-after-rejection flow
// calls this.
func (u *WizardUsecase) ResetDraft(ctx context.Context, merchantCode string) error {
	if err := u.draftRepo.Reset(ctx, merchantCode); err != nil {
		return err
	}

	u.mu.Lock()
	delete(u.editing, merchantCode)
	delete(u.baseline, merchantCode)
	u.mu.Unlock()

	u.publisher.Publish(ctx, merchantCode, 0)
	return nil
}
