package mirror

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"merchant-kita.onboarding/pkg/broadcast"
	"merchant-kita.onboarding/pkg/logger"
	"merchant-kita.onboarding/pkg/redis"
)

const (
	progressKeyPrefix = "compliance:progress:"
	progressChannel   = "compliance:progress"
)

// ProgressEvent is published on every confirmed progress change.
type ProgressEvent struct {
	MerchantCode string `json:"merchantCode"`
	Progress     int    `json:"progress"`
}

// ProgressMirror keeps the legacy progress key in redis in sync with the
// draft store and fans the change out to in-process subscribers and the
// redis pub/sub channel. Mirror failures are logged, never surfaced: the
// draft store remains the source of truth.
type ProgressMirror struct {
	bus *broadcast.Broadcaster[ProgressEvent]
}

// NewProgressMirror creates a new progress mirror
func NewProgressMirror() *ProgressMirror {
	return &ProgressMirror{bus: broadcast.New[ProgressEvent]()}
}

// Publish mirrors a progress value for a merchant.
func (m *ProgressMirror) Publish(ctx context.Context, merchantCode string, progress int) {
	event := ProgressEvent{MerchantCode: merchantCode, Progress: progress}
	m.bus.Publish(event)

	key := progressKeyPrefix + merchantCode
	if err := redis.Set(ctx, key, strconv.Itoa(progress), 0); err != nil {
		logger.Warn(ctx, "progress mirror set failed",
			zap.String("merchant_code", merchantCode),
			zap.Error(err),
		)
		return
	}
	payload := fmt.Sprintf("%s:%d", merchantCode, progress)
	if err := redis.Publish(ctx, progressChannel, payload); err != nil {
		logger.Warn(ctx, "progress mirror publish failed",
			zap.String("merchant_code", merchantCode),
			zap.Error(err),
		)
	}
}

// Subscribe registers an in-process listener for progress events.
func (m *ProgressMirror) Subscribe() (<-chan ProgressEvent, func()) {
	return m.bus.Subscribe()
}

// Stored reads the mirrored progress for a merchant from redis. Missing key
// returns 0.
func (m *ProgressMirror) Stored(ctx context.Context, merchantCode string) (int, error) {
	v, err := redis.Get(ctx, progressKeyPrefix+merchantCode)
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}
