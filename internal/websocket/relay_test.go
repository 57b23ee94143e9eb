package websocket

import (
	"DonaTalkAPI/internal/adapter"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisAdapter(t *testing.T) (*adapter.RedisAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return adapter.NewRedisAdapterFromClient(client), mr
}

func TestRelay(t *testing.T) {
	t.Run("Delivers Through Redis To Every Instance", func(t *testing.T) {
		redisAdapter, _ := newRedisAdapter(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hubA := startHub(t)
		hubB := startHub(t)
		relayA := NewRelay(redisAdapter, "donatalk:test", hubA)
		relayB := NewRelay(redisAdapter, "donatalk:test", hubB)
		require.NoError(t, relayA.Subscribe(ctx))
		require.NoError(t, relayB.Subscribe(ctx))

		onA := testClient(hubA, "u1", 4)
		onB := testClient(hubB, "u1", 4)
		join(t, hubA, onA)
		join(t, hubB, onB)

		require.NoError(t, relayA.Dispatch(ctx, Delivery{
			Event:   NewEvent(EventChatDeleted, map[string]string{"chatId": "c1"}),
			Targets: []string{"u1"},
		}))

		eventA := receive(t, onA)
		eventB := receive(t, onB)
		assert.Equal(t, EventChatDeleted, eventA.Type)
		assert.Equal(t, EventChatDeleted, eventB.Type)
		assert.Equal(t, map[string]interface{}{"chatId": "c1"}, eventB.Payload)
	})

	t.Run("Broadcast Reaches Anonymous", func(t *testing.T) {
		redisAdapter, _ := newRedisAdapter(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := startHub(t)
		relay := NewRelay(redisAdapter, "donatalk:test", hub)
		require.NoError(t, relay.Subscribe(ctx))

		anon := testClient(hub, "", 4)
		join(t, hub, anon)

		require.NoError(t, relay.Dispatch(ctx, Delivery{Event: NewEvent(EventNewMessage, "x"), Broadcast: true}))
		assert.Equal(t, EventNewMessage, receive(t, anon).Type)
	})

	t.Run("Malformed Payload Ignored", func(t *testing.T) {
		redisAdapter, _ := newRedisAdapter(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := startHub(t)
		relay := NewRelay(redisAdapter, "donatalk:test", hub)
		require.NoError(t, relay.Subscribe(ctx))

		c := testClient(hub, "u1", 4)
		join(t, hub, c)

		require.NoError(t, redisAdapter.Publish(ctx, "donatalk:test", []byte("{broken")))
		assertNothing(t, c)
	})

	t.Run("Publish Fails When Redis Is Gone", func(t *testing.T) {
		redisAdapter, mr := newRedisAdapter(t)
		hub := startHub(t)
		relay := NewRelay(redisAdapter, "donatalk:test", hub)

		mr.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.Error(t, relay.Dispatch(ctx, Delivery{Event: NewEvent(EventNewMessage, nil), Broadcast: true}))
	})
}
