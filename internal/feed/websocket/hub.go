package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/common/logger"
	donationdomain "github.com/givehub/server/internal/donation/domain"
	needdomain "github.com/givehub/server/internal/need/domain"
	"github.com/givehub/server/internal/observability/metrics"
)

// Hub fans out board events to every connected feed client. The feed is
// public and one-directional: clients only listen. A client that cannot keep
// up is dropped rather than allowed to stall the broadcast loop.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]struct{}
	broadcast chan Event
	clock     clock.Clock
	log       *logger.Logger
}

func NewHub(clk clock.Clock, log *logger.Logger) *Hub {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan Event, 64),
		clock:     clk,
		log:       log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.FeedActiveConnections.Set(float64(count))
	h.log.WithFields(logger.Fields{
		"clients": count,
		"action":  "feed_client_connected",
	}).Debug("feed client connected")
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.FeedActiveConnections.Set(float64(count))
		h.log.WithFields(logger.Fields{
			"clients": count,
			"action":  "feed_client_disconnected",
		}).Debug("feed client disconnected")
	}
}

func (h *Hub) PublishNeedCreated(need needdomain.Need) {
	h.publish(Event{
		Type: EventNeedCreated,
		At:   h.clock.Now(),
		Payload: NeedPayload{
			ID:       string(need.ID),
			Title:    need.Title,
			Category: need.Category,
		},
	})
}

func (h *Hub) PublishDonationCreated(donation donationdomain.Donation) {
	h.publish(Event{
		Type: EventDonationCreated,
		At:   h.clock.Now(),
		Payload: DonationPayload{
			ID:        string(donation.ID),
			DonorName: donation.DonorName,
			Item:      donation.Item,
			Quantity:  donation.Quantity,
			NeedID:    donation.NeedID,
		},
	})
}

// publish never blocks the caller: if the broadcast queue is full the event
// is dropped. The feed is a convenience stream, not a durable log.
func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warnf("feed broadcast queue full, dropping %s event", event.Type)
	}
}

func (h *Hub) deliver(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Errorf("feed event marshal failed: %v", err)
		return
	}

	metrics.FeedEventsBroadcastTotal.WithLabelValues(event.Type).Inc()

	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		metrics.FeedDroppedClientsTotal.Inc()
		h.log.Warn("feed client too slow, dropping connection")
		h.Unregister(client)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.FeedActiveConnections.Set(0)
}
