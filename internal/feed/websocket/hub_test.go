package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/common/logger"
	donationdomain "github.com/givehub/server/internal/donation/domain"
	needdomain "github.com/givehub/server/internal/need/domain"
)

func setupHub(t *testing.T) (*Hub, context.CancelFunc) {
	_ = t
	log, _ := logger.New("", "test", "info")
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	hub := NewHub(mockClock, log)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	return hub, cancel
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case data, ok := <-client.send:
		if !ok {
			t.Fatal("send channel closed before an event arrived")
		}
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHub_DeliversNeedEvent(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	log, _ := logger.New("", "test", "info")
	client := NewClient(hub, nil, log)
	hub.Register(client)

	hub.PublishNeedCreated(needdomain.Need{
		ID:       "need-1",
		Title:    "Winter coats",
		Category: "clothing",
	})

	event := receiveEvent(t, client)
	if event.Type != EventNeedCreated {
		t.Errorf("expected %s, got %s", EventNeedCreated, event.Type)
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		t.Fatalf("failed to re-encode payload: %v", err)
	}
	var need NeedPayload
	if err := json.Unmarshal(payload, &need); err != nil {
		t.Fatalf("failed to decode need payload: %v", err)
	}
	if need.ID != "need-1" || need.Title != "Winter coats" || need.Category != "clothing" {
		t.Errorf("unexpected payload: %+v", need)
	}
}

func TestHub_DeliversDonationEventToAllClients(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	log, _ := logger.New("", "test", "info")
	first := NewClient(hub, nil, log)
	second := NewClient(hub, nil, log)
	hub.Register(first)
	hub.Register(second)

	needID := "need-1"
	hub.PublishDonationCreated(donationdomain.Donation{
		ID:        "donation-1",
		DonorName: "Bob",
		Item:      "Blankets",
		Quantity:  3,
		NeedID:    &needID,
	})

	for _, client := range []*Client{first, second} {
		event := receiveEvent(t, client)
		if event.Type != EventDonationCreated {
			t.Errorf("expected %s, got %s", EventDonationCreated, event.Type)
		}
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	log, _ := logger.New("", "test", "info")
	// No reader and no buffer, so the first delivery marks it slow.
	slow := &Client{hub: hub, send: make(chan []byte), log: log}
	hub.Register(slow)

	hub.PublishNeedCreated(needdomain.Need{ID: "need-1", Title: "Anything"})

	deadline := time.After(2 * time.Second)
	for {
		hub.mu.RLock()
		_, present := hub.clients[slow]
		hub.mu.RUnlock()
		if !present {
			return
		}
		select {
		case <-deadline:
			t.Fatal("expected slow client to be dropped")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	log, _ := logger.New("", "test", "info")
	client := NewClient(hub, nil, log)
	hub.Register(client)

	hub.Unregister(client)
	hub.Unregister(client)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, cancel := setupHub(t)

	log, _ := logger.New("", "test", "info")
	client := NewClient(hub, nil, log)
	hub.Register(client)

	cancel()

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected channel close, got an event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for shutdown to close the client")
	}
}
