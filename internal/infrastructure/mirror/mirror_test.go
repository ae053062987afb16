package mirror

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"merchant-kita.onboarding/pkg/logger"
	redispkg "merchant-kita.onboarding/pkg/redis"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	logger.Init("development")

	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable: %v", err)
	}
	t.Cleanup(srv.Close)

	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{
		Addr: srv.Addr(),
	}))
	return srv
}

func TestProgressMirror_PublishWritesLegacyKey(t *testing.T) {
	srv := setupRedis(t)
	m := NewProgressMirror()
	ctx := context.Background()

	m.Publish(ctx, "MC-001", 3)

	got, err := srv.Get("compliance:progress:MC-001")
	require.NoError(t, err)
	require.Equal(t, "3", got)

	stored, err := m.Stored(ctx, "MC-001")
	require.NoError(t, err)
	require.Equal(t, 3, stored)
}

func TestProgressMirror_StoredMissingKeyIsZero(t *testing.T) {
	setupRedis(t)
	m := NewProgressMirror()

	stored, err := m.Stored(context.Background(), "MC-unknown")
	require.NoError(t, err)
	require.Equal(t, 0, stored)
}

func TestProgressMirror_SubscribeReceivesEvents(t *testing.T) {
	setupRedis(t)
	m := NewProgressMirror()

	events, cancel := m.Subscribe()
	defer cancel()

	m.Publish(context.Background(), "MC-001", 5)

	select {
	case ev := <-events:
		require.Equal(t, "MC-001", ev.MerchantCode)
		require.Equal(t, 5, ev.Progress)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for progress event")
	}
}

func TestProgressMirror_RedisFailureDoesNotBlockBus(t *testing.T) {
	srv := setupRedis(t)
	m := NewProgressMirror()

	events, cancel := m.Subscribe()
	defer cancel()

	srv.Close()

	// Redis being down only loses the legacy mirror; in-process listeners
	// still get the event.
	m.Publish(context.Background(), "MC-001", 2)

	select {
	case ev := <-events:
		require.Equal(t, 2, ev.Progress)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for progress event")
	}
}

func TestProgressMirror_UninitializedClientDoesNotBlockBus(t *testing.T) {
	logger.Init("development")
	redispkg.SetClient(nil)
	m := NewProgressMirror()

	events, cancel := m.Subscribe()
	defer cancel()

	// Boot without a redis client leaves delivery local only.
	m.Publish(context.Background(), "MC-001", 3)

	select {
	case ev := <-events:
		require.Equal(t, 3, ev.Progress)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for progress event")
	}

	_, err := m.Stored(context.Background(), "MC-001")
	require.ErrorIs(t, err, redispkg.ErrNotInitialized)
}
