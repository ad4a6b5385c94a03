package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	profileID := uuid.New()

	client, err := hub.Register(profileID, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(profileID))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(profileID))
}

func TestHub_PerProfileConnectionLimit(t *testing.T) {
	hub := NewHub()
	profileID := uuid.New()

	for i := 0; i < maxConnsPerProfile; i++ {
		_, err := hub.Register(profileID, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(profileID, nil)
	assert.Error(t, err)
}

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	hub := NewHub()
	profileID := uuid.New()
	other := uuid.New()

	clientA, err := hub.Register(profileID, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(profileID, nil)
	require.NoError(t, err)
	clientC, err := hub.Register(other, nil)
	require.NoError(t, err)

	hub.Broadcast(profileID, []byte("hello"))

	assert.Len(t, clientA.Send, 1)
	assert.Len(t, clientB.Send, 1)
	assert.Len(t, clientC.Send, 0)
}

func TestHub_StartWiringForwardsToProfile(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	sink := NewRedisSink(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, sink))

	profileID := uuid.New()
	client, err := hub.Register(profileID, nil)
	require.NoError(t, err)

	var published int32
	go func() {
		if err := sink.Deliver(context.Background(), profileID, []byte(`{"type":"FOLLOW"}`)); err == nil {
			atomic.AddInt32(&published, 1)
		}
	}()

	assert.Eventually(t, func() bool {
		return len(client.Send) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&published))
}

func TestHub_ShutdownIsIdempotent(t *testing.T) {
	hub := NewHub()
	profileID := uuid.New()

	_, err := hub.Register(profileID, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.False(t, hub.IsOnline(profileID))

	assert.NotPanics(t, func() {
		assert.NoError(t, hub.Shutdown(context.Background()))
	})
}
