package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"merchant-kita.onboarding/internal/domain/entities"
	"merchant-kita.onboarding/internal/usecases"
	"merchant-kita.onboarding/pkg/jwt"
	"merchant-kita.onboarding/pkg/logger"
)

type mockSelectionRepo struct {
	mock.Mock
}

func (m *mockSelectionRepo) Get(ctx context.Context) (*entities.MerchantSelection, error) {
	args := m.Called(ctx)
	if sel, ok := args.Get(0).(*entities.MerchantSelection); ok {
		return sel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSelectionRepo) SetMerchants(ctx context.Context, merchants []entities.Merchant) (*entities.MerchantSelection, error) {
	args := m.Called(ctx, merchants)
	if sel, ok := args.Get(0).(*entities.MerchantSelection); ok {
		return sel, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSelectionRepo) Select(ctx context.Context, merchantCode string) error {
	return m.Called(ctx, merchantCode).Error(0)
}

func (m *mockSelectionRepo) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockRecordClient struct {
	mock.Mock
}

func (m *mockRecordClient) Fetch(ctx context.Context, merchantCode string) (*entities.ComplianceRecord, error) {
	args := m.Called(ctx, merchantCode)
	if rec, ok := args.Get(0).(*entities.ComplianceRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordClient) Save(ctx context.Context, merchantCode string, payload *entities.RecordPayload, existing *entities.ComplianceRecord) (*entities.ComplianceRecord, error) {
	args := m.Called(ctx, merchantCode, payload, existing)
	if rec, ok := args.Get(0).(*entities.ComplianceRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordClient) StartVerification(ctx context.Context, merchantCode string) error {
	return m.Called(ctx, merchantCode).Error(0)
}

func (m *mockRecordClient) Cached(merchantCode string) *entities.ComplianceRecord {
	args := m.Called(merchantCode)
	if rec, ok := args.Get(0).(*entities.ComplianceRecord); ok {
		return rec
	}
	return nil
}

func (m *mockRecordClient) Invalidate(merchantCode string) {
	m.Called(merchantCode)
}

func sessionSetter(userID uuid.UUID, role string, merchants []jwt.MerchantClaim) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)
		c.Set(MerchantsKey, merchants)
		c.Next()
	}
}

func newGateRouter(t *testing.T, client *mockRecordClient, selection *mockSelectionRepo, session gin.HandlerFunc) (*gin.Engine, *usecases.Gate) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("development")

	gate := usecases.NewGate()
	merchants := usecases.NewMerchantUsecase(selection)

	r := gin.New()
	if session != nil {
		r.Use(session)
	}
	r.Use(GateMiddleware(gate, merchants, client))
	r.GET("/api/v1/compliance", func(c *gin.Context) {
		code, _ := GetMerchantCode(c)
		c.JSON(http.StatusOK, gin.H{"merchantCode": code})
	})
	r.GET("/api/v1/wizard", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/merchants/selection", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, gate
}

func selectionOf(codes ...string) *entities.MerchantSelection {
	sel := &entities.MerchantSelection{}
	for _, code := range codes {
		sel.Merchants = append(sel.Merchants, entities.Merchant{MerchantCode: code})
	}
	if len(codes) > 0 {
		sel.SelectedMerchantCode = codes[0]
	}
	return sel
}

func TestGateMiddleware_NoSessionRedirectsToLogin(t *testing.T) {
	client := new(mockRecordClient)
	selection := new(mockSelectionRepo)
	r, _ := newGateRouter(t, client, selection, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizard?foo=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	require.Contains(t, w.Header().Get("Location"), "/login?next=")
}

func TestGateMiddleware_IncompleteRedirectsOncePerSession(t *testing.T) {
	client := new(mockRecordClient)
	selection := new(mockSelectionRepo)

	merchants := []jwt.MerchantClaim{{MerchantCode: "MC-001", MerchantName: "Acme"}}
	selection.On("SetMerchants", mock.Anything, mock.Anything).Return(selectionOf("MC-001"), nil)
	record := entities.NotStartedRecord("MC-001")
	record.ID = 7
	record.Progress = 3
	client.On("Fetch", mock.Anything, "MC-001").Return(record, nil)

	r, _ := newGateRouter(t, client, selection, sessionSetter(uuid.New(), "merchant", merchants))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/merchants/selection", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	require.Equal(t, "/compliance", w.Header().Get("Location"))

	// Same session: the redirect only fires once.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/merchants/selection", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGateMiddleware_WizardCountsAsComplianceSurface(t *testing.T) {
	client := new(mockRecordClient)
	selection := new(mockSelectionRepo)

	merchants := []jwt.MerchantClaim{{MerchantCode: "MC-001"}}
	selection.On("SetMerchants", mock.Anything, mock.Anything).Return(selectionOf("MC-001"), nil)
	record := entities.NotStartedRecord("MC-001")
	record.Progress = 2
	client.On("Fetch", mock.Anything, "MC-001").Return(record, nil)

	r, _ := newGateRouter(t, client, selection, sessionSetter(uuid.New(), "merchant", merchants))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wizard", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGateMiddleware_FullyVerifiedLeavesCompliance(t *testing.T) {
	client := new(mockRecordClient)
	selection := new(mockSelectionRepo)

	merchants := []jwt.MerchantClaim{{MerchantCode: "MC-001"}}
	selection.On("SetMerchants", mock.Anything, mock.Anything).Return(selectionOf("MC-001"), nil)
	record := entities.NotStartedRecord("MC-001")
	record.ID = 7
	record.Progress = entities.ProgressSubmitted
	client.On("Fetch", mock.Anything, "MC-001").Return(record, nil)

	r, _ := newGateRouter(t, client, selection, sessionSetter(uuid.New(), "merchant", merchants))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/compliance", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestGateMiddleware_RecordLoadFailureAdmits(t *testing.T) {
	client := new(mockRecordClient)
	selection := new(mockSelectionRepo)

	merchants := []jwt.MerchantClaim{{MerchantCode: "MC-001"}}
	selection.On("SetMerchants", mock.Anything, mock.Anything).Return(selectionOf("MC-001"), nil)
	client.On("Fetch", mock.Anything, "MC-001").Return(nil, context.DeadlineExceeded)

	r, _ := newGateRouter(t, client, selection, sessionSetter(uuid.New(), "merchant", merchants))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/merchants/selection", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGateMiddleware_SetsMerchantCodeForHandlers(t *testing.T) {
	client := new(mockRecordClient)
	selection := new(mockSelectionRepo)

	merchants := []jwt.MerchantClaim{{MerchantCode: "MC-001"}}
	selection.On("SetMerchants", mock.Anything, mock.Anything).Return(selectionOf("MC-001"), nil)
	record := entities.NotStartedRecord("MC-001")
	record.Progress = 0
	client.On("Fetch", mock.Anything, "MC-001").Return(record, nil)

	r, _ := newGateRouter(t, client, selection, sessionSetter(uuid.New(), "merchant", merchants))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/compliance", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"merchantCode":"MC-001"`)
}
