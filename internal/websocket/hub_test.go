package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, "", logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func fakeClient(hub *Hub, buffer int) *Client {
	return &Client{Hub: hub, ID: uuid.New(), UserName: "alice", Send: make(chan []byte, buffer)}
}

func TestHubDeliversEnvelopes(t *testing.T) {
	hub := runHub(t)
	c := fakeClient(hub, 4)
	require.True(t, hub.join(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	evt := events.NewEvent(events.PitchScored, map[string]interface{}{"user_name": "alice"})
	require.NoError(t, hub.Publish(context.Background(), evt))

	select {
	case raw := <-c.Send:
		var env events.Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, evt.EventID(), env.ID)
		assert.Equal(t, events.PitchScored, env.Type)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := runHub(t)
	c := fakeClient(hub, 0)
	require.True(t, hub.join(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), events.NewEvent(events.ResultUpdated, nil)))

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubUnregisterTwiceIsSafe(t *testing.T) {
	hub := runHub(t)
	c := fakeClient(hub, 1)
	require.True(t, hub.join(c))
	hub.leave(c)
	hub.leave(c)

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubStopsAcceptingAfterShutdown(t *testing.T) {
	hub := NewHub(nil, "", logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := fakeClient(hub, 1)
	require.True(t, hub.join(c))
	cancel()
	<-stopped

	_, open := <-c.Send
	assert.False(t, open)
	assert.False(t, hub.join(fakeClient(hub, 1)))
	hub.leave(c)
}
