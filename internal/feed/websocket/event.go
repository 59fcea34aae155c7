package websocket

import "time"

const (
	EventNeedCreated     = "need_created"
	EventDonationCreated = "donation_created"
)

type Event struct {
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

type NeedPayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type DonationPayload struct {
	ID        string  `json:"id"`
	DonorName string  `json:"donor_name"`
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	NeedID    *string `json:"need_id,omitempty"`
}
