package complianceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/infrastructure/metrics"
	"merchant-kita.onboarding/pkg/logger"
)

// envelope is the response wrapper the compliance service puts around every
// body.
type envelope struct {
	RequestSuccessful bool            `json:"requestSuccessful"`
	ResponseData      json.RawMessage `json:"responseData"`
	Message           string          `json:"message"`
	ResponseCode      string          `json:"responseCode"`
}

// Client implements repositories.RecordClient against the remote compliance
// HTTP API. Fetches are deduplicated and cached per merchant for the session;
// the cache is only replaced by a successful save.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
	metrics    *metrics.Metrics

	mu    sync.RWMutex
	cache map[string]*entities.ComplianceRecord
}

// NewClient creates a new compliance API client
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		cache:      make(map[string]*entities.ComplianceRecord),
	}
}

var _ repositories.RecordClient = (*Client)(nil)

// Fetch returns the compliance record for a merchant. HTTP 404 and a success
// envelope carrying null responseData both mean the merchant has not started;
// they are normalized to the not-started record. There is no retry: a failed
// fetch surfaces to the caller, a successful one is cached for the session.
func (c *Client) Fetch(ctx context.Context, merchantCode string) (*entities.ComplianceRecord, error) {
	if strings.TrimSpace(merchantCode) == "" {
		c.metrics.IncrementFetch("error")
		return nil, domainerrors.ErrMerchantCodeRequired
	}

	if cached := c.Cached(merchantCode); cached != nil {
		c.metrics.IncrementFetch("cached")
		return cached, nil
	}

	v, err, _ := c.group.Do(merchantCode, func() (interface{}, error) {
		start := time.Now()
		record, err := c.fetchRemote(ctx, merchantCode)
		c.metrics.ObserveFetchLatency(time.Since(start))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[merchantCode] = record
		c.mu.Unlock()
		return record, nil
	})
	if err != nil {
		c.metrics.IncrementFetch("error")
		return nil, err
	}

	record := v.(*entities.ComplianceRecord)
	if record.Exists() {
		c.metrics.IncrementFetch("ok")
	} else {
		c.metrics.IncrementFetch("not_started")
	}
	return record, nil
}

func (c *Client) fetchRemote(ctx context.Context, merchantCode string) (*entities.ComplianceRecord, error) {
	url := c.baseURL + "/api/v1/merchant/compliance/" + merchantCode
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entities.NotStartedRecord(merchantCode), nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("compliance fetch: unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("compliance fetch: decode response: %w", err)
	}
	if !env.RequestSuccessful {
		return nil, fmt.Errorf("compliance fetch: %s", env.Message)
	}
	if len(env.ResponseData) == 0 || string(env.ResponseData) == "null" {
		return entities.NotStartedRecord(merchantCode), nil
	}

	var record entities.ComplianceRecord
	if err := json.Unmarshal(env.ResponseData, &record); err != nil {
		return nil, fmt.Errorf("compliance fetch: decode record: %w", err)
	}
	if record.MerchantCode == "" {
		record.MerchantCode = merchantCode
	}
	return &record, nil
}

// Save submits the payload. A record that does not exist server-side yet is
// created with POST, an existing one updated with PUT. The returned record
// replaces the cached one.
func (c *Client) Save(ctx context.Context, merchantCode string, payload *entities.RecordPayload, existing *entities.ComplianceRecord) (*entities.ComplianceRecord, error) {
	if strings.TrimSpace(merchantCode) == "" {
		return nil, domainerrors.ErrMerchantCodeRequired
	}

	body, contentType, err := encodeMultipart(merchantCode, payload)
	if err != nil {
		return nil, err
	}

	method := http.MethodPost
	url := c.baseURL + "/api/v1/merchant/compliance"
	if existing.Exists() {
		method = http.MethodPut
		url += "/" + strconv.Itoa(existing.ID)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error(ctx, "compliance save failed",
			zap.String("merchant_code", merchantCode),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("compliance save: unexpected status %d: %w", resp.StatusCode, domainerrors.ErrSubmissionFailed)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("compliance save: decode response: %w", err)
	}
	if !env.RequestSuccessful {
		return nil, fmt.Errorf("compliance save: %s: %w", env.Message, domainerrors.ErrSubmissionFailed)
	}

	record := &entities.ComplianceRecord{}
	if len(env.ResponseData) > 0 && string(env.ResponseData) != "null" {
		if err := json.Unmarshal(env.ResponseData, record); err != nil {
			return nil, fmt.Errorf("compliance save: decode record: %w", err)
		}
	}
	if record.MerchantCode == "" {
		record.MerchantCode = merchantCode
	}

	c.mu.Lock()
	c.cache[merchantCode] = record
	c.mu.Unlock()
	return record, nil
}

// StartVerification requests the review transition for a submitted record.
func (c *Client) StartVerification(ctx context.Context, merchantCode string) error {
	if strings.TrimSpace(merchantCode) == "" {
		return domainerrors.ErrMerchantCodeRequired
	}

	url := c.baseURL + "/api/v1/merchant/compliance/" + merchantCode + "/verification"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("start verification: unexpected status %d: %w", resp.StatusCode, domainerrors.ErrSubmissionFailed)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("start verification: decode response: %w", err)
	}
	if !env.RequestSuccessful {
		return fmt.Errorf("start verification: %s: %w", env.Message, domainerrors.ErrSubmissionFailed)
	}
	return nil
}

// Cached returns the session-cached record, or nil.
func (c *Client) Cached(merchantCode string) *entities.ComplianceRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache[merchantCode]
}

// Invalidate drops the cached record for a merchant.
func (c *Client) Invalidate(merchantCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, merchantCode)
}

// encodeMultipart writes the payload as multipart/form-data: scalar fields as
// plain parts, owners as owners[i].field indexed keys, documents as file
// parts.
func encodeMultipart(merchantCode string, payload *entities.RecordPayload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("merchantCode", merchantCode); err != nil {
		return nil, "", err
	}
	if payload != nil {
		for k, v := range payload.Fields {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
		for i, owner := range payload.Owners {
			for k, v := range owner {
				key := fmt.Sprintf("owners[%d].%s", i, k)
				if err := w.WriteField(key, v); err != nil {
					return nil, "", err
				}
			}
		}
		for _, doc := range payload.Documents {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, doc.Field, doc.Filename))
			h.Set("Content-Type", doc.MimeType)
			part, err := w.CreatePart(h)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(doc.Data); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
