package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"merchant-kita.onboarding/internal/domain/entities"
)

type mockDraftRepo struct {
	mock.Mock
}

func (m *mockDraftRepo) Get(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode)
	if d, ok := args.Get(0).(*entities.ComplianceDraft); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDraftRepo) Update(ctx context.Context, merchantCode string, patch *entities.DraftPatch) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode, patch)
	if d, ok := args.Get(0).(*entities.ComplianceDraft); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDraftRepo) SetStepIndex(ctx context.Context, merchantCode string, index int) error {
	return m.Called(ctx, merchantCode, index).Error(0)
}

func (m *mockDraftRepo) MarkStepComplete(ctx context.Context, merchantCode string, stepIndex, totalSteps int) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode, stepIndex, totalSteps)
	if d, ok := args.Get(0).(*entities.ComplianceDraft); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDraftRepo) MarkSubmitted(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode)
	if d, ok := args.Get(0).(*entities.ComplianceDraft); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDraftRepo) Reset(ctx context.Context, merchantCode string) error {
	return m.Called(ctx, merchantCode).Error(0)
}

func (m *mockDraftRepo) AppendOwner(ctx context.Context, merchantCode string, owner entities.Owner) (*entities.Owner, error) {
	args := m.Called(ctx, merchantCode, owner)
	if o, ok := args.Get(0).(*entities.Owner); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDraftRepo) UpdateOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID, owner entities.Owner) error {
	return m.Called(ctx, merchantCode, ownerID, owner).Error(0)
}

func (m *mockDraftRepo) RemoveOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID) error {
	return m.Called(ctx, merchantCode, ownerID).Error(0)
}

type mockRecordClient struct {
	mock.Mock
}

func (m *mockRecordClient) Fetch(ctx context.Context, merchantCode string) (*entities.ComplianceRecord, error) {
	args := m.Called(ctx, merchantCode)
	if r, ok := args.Get(0).(*entities.ComplianceRecord); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordClient) Save(ctx context.Context, merchantCode string, payload *entities.RecordPayload, existing *entities.ComplianceRecord) (*entities.ComplianceRecord, error) {
	args := m.Called(ctx, merchantCode, payload, existing)
	if r, ok := args.Get(0).(*entities.ComplianceRecord); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordClient) StartVerification(ctx context.Context, merchantCode string) error {
	return m.Called(ctx, merchantCode).Error(0)
}

func (m *mockRecordClient) Cached(merchantCode string) *entities.ComplianceRecord {
	args := m.Called(merchantCode)
	if r, ok := args.Get(0).(*entities.ComplianceRecord); ok {
		return r
	}
	return nil
}

func (m *mockRecordClient) Invalidate(merchantCode string) {
	m.Called(merchantCode)
}

type mockSelectionRepo struct {
	mock.Mock
}

func (m *mockSelectionRepo) Get(ctx context.Context) (*entities.MerchantSelection, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*entities.MerchantSelection); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSelectionRepo) SetMerchants(ctx context.Context, merchants []entities.Merchant) (*entities.MerchantSelection, error) {
	args := m.Called(ctx, merchants)
	if s, ok := args.Get(0).(*entities.MerchantSelection); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSelectionRepo) Select(ctx context.Context, merchantCode string) error {
	return m.Called(ctx, merchantCode).Error(0)
}

func (m *mockSelectionRepo) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockSettingRepo struct {
	mock.Mock
}

func (m *mockSettingRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockSettingRepo) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockSettingRepo) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type stubPublisher struct {
	events []int
}

func (p *stubPublisher) Publish(_ context.Context, _ string, progress int) {
	p.events = append(p.events, progress)
}
