package usecases_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"merchant-kita.onboarding/internal/domain/entities"
)

// Mock DraftRepository
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Get(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplianceDraft), args.Error(1)
}

func (m *MockDraftRepository) Update(ctx context.Context, merchantCode string, patch *entities.DraftPatch) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplianceDraft), args.Error(1)
}

func (m *MockDraftRepository) SetStepIndex(ctx context.Context, merchantCode string, index int) error {
	args := m.Called(ctx, merchantCode, index)
	return args.Error(0)
}

func (m *MockDraftRepository) MarkStepComplete(ctx context.Context, merchantCode string, stepIndex, totalSteps int) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode, stepIndex, totalSteps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplianceDraft), args.Error(1)
}

func (m *MockDraftRepository) MarkSubmitted(ctx context.Context, merchantCode string) (*entities.ComplianceDraft, error) {
	args := m.Called(ctx, merchantCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplianceDraft), args.Error(1)
}

func (m *MockDraftRepository) Reset(ctx context.Context, merchantCode string) error {
	args := m.Called(ctx, merchantCode)
	return args.Error(0)
}

func (m *MockDraftRepository) AppendOwner(ctx context.Context, merchantCode string, owner entities.Owner) (*entities.Owner, error) {
	args := m.Called(ctx, merchantCode, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Owner), args.Error(1)
}

func (m *MockDraftRepository) UpdateOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID, owner entities.Owner) error {
	args := m.Called(ctx, merchantCode, ownerID, owner)
	return args.Error(0)
}

func (m *MockDraftRepository) RemoveOwner(ctx context.Context, merchantCode string, ownerID uuid.UUID) error {
	args := m.Called(ctx, merchantCode, ownerID)
	return args.Error(0)
}

// Mock RecordClient
type MockRecordClient struct {
	mock.Mock
}

func (m *MockRecordClient) Fetch(ctx context.Context, merchantCode string) (*entities.ComplianceRecord, error) {
	args := m.Called(ctx, merchantCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplianceRecord), args.Error(1)
}

func (m *MockRecordClient) Save(ctx context.Context, merchantCode string, payload *entities.RecordPayload, existing *entities.ComplianceRecord) (*entities.ComplianceRecord, error) {
	args := m.Called(ctx, merchantCode, payload, existing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplianceRecord), args.Error(1)
}

func (m *MockRecordClient) StartVerification(ctx context.Context, merchantCode string) error {
	args := m.Called(ctx, merchantCode)
	return args.Error(0)
}

func (m *MockRecordClient) Cached(merchantCode string) *entities.ComplianceRecord {
	args := m.Called(merchantCode)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entities.ComplianceRecord)
}

func (m *MockRecordClient) Invalidate(merchantCode string) {
	m.Called(merchantCode)
}

// Mock SettingRepository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// stubPublisher records published progress values.
type stubPublisher struct {
	mu     sync.Mutex
	events []int
}

func (s *stubPublisher) Publish(_ context.Context, _ string, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, progress)
}

func (s *stubPublisher) published() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.events...)
}
