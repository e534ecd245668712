package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "pitch_live_events"

// Hub fans result events out to every connected websocket client. With a
// Redis client, events go through a pub/sub channel so every instance
// delivers them to its own clients.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	rdb     redis.UniversalClient
	channel string

	logger logger.ILogger
}

func NewHub(rdb redis.UniversalClient, channel string, log logger.ILogger) *Hub {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		channel:    channel,
		logger:     log,
	}
}

// Run serves registrations until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("HUB", "Client registered", map[string]interface{}{"user_name": client.UserName, "client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("HUB", "Client unregistered", map[string]interface{}{"user_name": client.UserName, "client_id": client.ID})
			}
			h.mu.Unlock()
		}
	}
}

// join registers c unless the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of locally connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements events.Sink.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(events.ToEnvelope(event))
	if err != nil {
		return err
	}

	if h.rdb != nil {
		return h.rdb.Publish(ctx, h.channel, data).Err()
	}
	h.deliver(data)
	return nil
}

// deliver writes to local clients. Clients with a full buffer are dropped
// after the read lock is released.
func (h *Hub) deliver(data []byte) {
	var slow []*Client

	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("HUB", "Client send buffer full, dropping client", map[string]interface{}{"user_name": c.UserName, "client_id": c.ID})
		h.leave(c)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.deliver([]byte(msg.Payload))
		}
	}
}
