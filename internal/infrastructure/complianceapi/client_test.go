package complianceapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	logger.Init("development")
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil), srv
}

func TestClient_Fetch_RequiresMerchantCode(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.Fetch(context.Background(), "  ")
	require.ErrorIs(t, err, domainerrors.ErrMerchantCodeRequired)
}

func TestClient_Fetch_NotFoundIsNotStarted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	record, err := client.Fetch(context.Background(), "MC-001")
	require.NoError(t, err)
	require.False(t, record.Exists())
	require.Equal(t, entities.ComplianceStatusNotStarted, record.Status)
	require.Equal(t, 0, record.Progress)
	require.Empty(t, record.Documents)
	require.Empty(t, record.Owners)
}

func TestClient_Fetch_NullResponseDataIsNotStarted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestSuccessful":true,"responseData":null,"message":"ok","responseCode":"00"}`))
	}))

	record, err := client.Fetch(context.Background(), "MC-001")
	require.NoError(t, err)
	require.False(t, record.Exists())
	require.Equal(t, entities.ComplianceStatusNotStarted, record.Status)
}

func TestClient_Fetch_DecodesAndCaches(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		require.Equal(t, "/api/v1/merchant/compliance/MC-001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestSuccessful":true,"responseData":{"id":42,"merchantCode":"MC-001","progress":3,"status":"pending"},"message":"ok","responseCode":"00"}`))
	}))

	ctx := context.Background()
	record, err := client.Fetch(ctx, "MC-001")
	require.NoError(t, err)
	require.True(t, record.Exists())
	require.Equal(t, 42, record.ID)
	require.Equal(t, 3, record.Progress)
	require.Equal(t, entities.ComplianceStatusPending, record.Status)

	// Second fetch is served from the session cache.
	again, err := client.Fetch(ctx, "MC-001")
	require.NoError(t, err)
	require.Equal(t, record.ID, again.ID)
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))

	require.NotNil(t, client.Cached("MC-001"))
	client.Invalidate("MC-001")
	require.Nil(t, client.Cached("MC-001"))
}

func TestClient_Fetch_ConcurrentCallsShareOneRequest(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestSuccessful":true,"responseData":{"id":7,"merchantCode":"MC-001","progress":2,"status":"pending"},"message":"ok","responseCode":"00"}`))
	}))

	ctx := context.Background()
	type result struct {
		record *entities.ComplianceRecord
		err    error
	}
	results := make(chan result, 2)
	for i := 0; i < 2; i++ {
		go func() {
			record, err := client.Fetch(ctx, "MC-001")
			results <- result{record, err}
		}()
	}

	// Let both callers join the in-flight request before it resolves.
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&hits) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		select {
		case res := <-results:
			require.NoError(t, res.err)
			require.Equal(t, 7, res.record.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for fetch result")
		}
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_Fetch_ServerErrorPropagates(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Fetch(context.Background(), "MC-001")
	require.Error(t, err)
	require.Nil(t, client.Cached("MC-001"))
}

func TestClient_Save_CreatePostsMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/merchant/compliance", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		require.Equal(t, "MC-001", r.FormValue("merchantCode"))
		require.Equal(t, "Acme Ltd", r.FormValue("legalBusinessName"))
		require.Equal(t, "1", r.FormValue("progress"))
		require.Equal(t, "Ada", r.FormValue("owners[0].firstName"))
		require.Equal(t, "Hopper", r.FormValue("owners[1].lastName"))

		file, header, err := r.FormFile("certificate_of_incorporation")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "certificate_of_incorporation.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestSuccessful":true,"responseData":{"id":7,"merchantCode":"MC-001","progress":1,"status":"pending"},"message":"ok","responseCode":"00"}`))
	}))

	payload := &entities.RecordPayload{
		Fields: map[string]string{
			"legalBusinessName": "Acme Ltd",
			"progress":          "1",
		},
		Owners: []entities.OwnerPayload{
			{"firstName": "Ada", "lastName": "Lovelace"},
			{"firstName": "Grace", "lastName": "Hopper"},
		},
		Documents: []entities.DocumentUpload{
			{
				Field:    "certificate_of_incorporation",
				Filename: "certificate_of_incorporation.pdf",
				MimeType: "application/pdf",
				Data:     []byte("%PDF-1.4 test"),
			},
		},
	}

	record, err := client.Save(context.Background(), "MC-001", payload, nil)
	require.NoError(t, err)
	require.Equal(t, 7, record.ID)

	// A successful save replaces the cache.
	cached := client.Cached("MC-001")
	require.NotNil(t, cached)
	require.Equal(t, 7, cached.ID)
}

func TestClient_Save_UpdatePutsToRecordID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/merchant/compliance/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestSuccessful":true,"responseData":{"id":42,"merchantCode":"MC-001","progress":4,"status":"pending"},"message":"ok","responseCode":"00"}`))
	}))

	existing := &entities.ComplianceRecord{ID: 42, MerchantCode: "MC-001"}
	record, err := client.Save(context.Background(), "MC-001", &entities.RecordPayload{
		Fields: map[string]string{"progress": "4"},
	}, existing)
	require.NoError(t, err)
	require.Equal(t, 4, record.Progress)
}

func TestClient_Save_FailureEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestSuccessful":false,"responseData":null,"message":"rejected by upstream","responseCode":"96"}`))
	}))

	_, err := client.Save(context.Background(), "MC-001", &entities.RecordPayload{}, nil)
	require.ErrorIs(t, err, domainerrors.ErrSubmissionFailed)
	require.Nil(t, client.Cached("MC-001"))
}

func TestClient_StartVerification(t *testing.T) {
	var called bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/merchant/compliance/MC-001/verification", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requestSuccessful":true,"responseData":null,"message":"ok","responseCode":"00"}`))
	}))

	require.NoError(t, client.StartVerification(context.Background(), "MC-001"))
	require.True(t, called)
}

func TestClient_StartVerification_Failure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := client.StartVerification(context.Background(), "MC-001")
	require.ErrorIs(t, err, domainerrors.ErrSubmissionFailed)
}
